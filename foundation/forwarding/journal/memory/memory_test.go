package memory_test

import (
	"testing"

	"github.com/relaylabs/relay/foundation/forwarding/journal/memory"
	"github.com/relaylabs/relay/foundation/forwarding/ledger"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_Journal(t *testing.T) {
	t.Log("Given the need to store and read settlement records in memory.")
	{
		t.Logf("\tTest 0:\tWhen handling a journal of two records.")
		{
			jrnl, err := memory.New()
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to open the journal: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to open the journal.", success)

			rec1 := ledger.Record{Header: ledger.RecordHeader{Seq: 1}}
			rec2 := ledger.Record{Header: ledger.RecordHeader{Seq: 2, PrevHash: rec1.Hash()}}

			if err := jrnl.Write(rec1); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to write record 1: %v", failed, err)
			}
			if err := jrnl.Write(rec2); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to write record 2: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to write two records.", success)

			if err := jrnl.Write(ledger.Record{Header: ledger.RecordHeader{Seq: 5}}); err == nil {
				t.Fatalf("\t%s\tTest 0:\tShould not be able to write a record out of order.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould not be able to write a record out of order.", success)

			record, err := jrnl.GetRecord(2)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to read record 2: %v", failed, err)
			}
			if record.Header.PrevHash != rec1.Hash() {
				t.Fatalf("\t%s\tTest 0:\tShould read back the stored record.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to read record 2.", success)

			if _, err := jrnl.GetRecord(3); err == nil {
				t.Fatalf("\t%s\tTest 0:\tShould not be able to read a missing record.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould not be able to read a missing record.", success)

			var count int
			iter := jrnl.ForEach()
			for record, err := iter.Next(); !iter.Done(); record, err = iter.Next() {
				if err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to iterate the journal: %v", failed, err)
				}
				count++
				if record.Header.Seq != uint64(count) {
					t.Fatalf("\t%s\tTest 0:\tShould iterate records in order, got %d.", failed, record.Header.Seq)
				}
			}
			if count != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould iterate two records, got %d.", failed, count)
			}
			t.Logf("\t%s\tTest 0:\tShould iterate two records in order.", success)
		}
	}
}
