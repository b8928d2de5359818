package commands

import (
	"fmt"
	"strconv"

	"github.com/relaylabs/relay/foundation/forwarding/host"
)

// Journal prints the records committed to the journal. With no arguments
// the whole journal is printed, otherwise a from/to sequence range.
func Journal(args []string, hst *host.Host) error {
	from := uint64(1)
	to := host.QueryLatest

	if len(args) > 2 {
		v, err := strconv.ParseUint(args[2], 10, 64)
		if err != nil {
			return err
		}
		from = v
	}

	if len(args) > 3 {
		v, err := strconv.ParseUint(args[3], 10, 64)
		if err != nil {
			return err
		}
		to = v
	}

	for _, record := range hst.QueryRecordsBySeq(from, to) {
		fmt.Printf("Record: %d  PrevHash: %s  TimeStamp: %d\n",
			record.Header.Seq, record.Header.PrevHash, record.Header.TimeStamp)

		for _, spend := range record.Spends {
			fmt.Printf("\tSpend: %s  Nonce: %d\n", spend.AccountID, spend.Nonce)
		}
		for _, move := range record.Moves {
			fmt.Printf("\tMove: %s -> %s  Value: %d\n", move.FromID, move.ToID, move.Value)
		}
		for _, accountID := range record.Closed {
			fmt.Printf("\tClosed: %s\n", accountID)
		}
	}

	return nil
}
