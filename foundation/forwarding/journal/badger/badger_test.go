package badger_test

import (
	"testing"

	"github.com/relaylabs/relay/foundation/forwarding/journal/badger"
	"github.com/relaylabs/relay/foundation/forwarding/ledger"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_Journal(t *testing.T) {
	t.Log("Given the need to store and read settlement records with badger.")
	{
		t.Logf("\tTest 0:\tWhen handling a journal across two opens.")
		{
			journalPath := t.TempDir()

			jrnl, err := badger.New(journalPath)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to open the journal: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to open the journal.", success)

			rec1 := ledger.Record{
				Header: ledger.RecordHeader{Seq: 1, TimeStamp: 1723456789},
				Spends: []ledger.Spend{{AccountID: "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4", Nonce: 1}},
			}
			rec2 := ledger.Record{
				Header: ledger.RecordHeader{Seq: 2, PrevHash: rec1.Hash(), TimeStamp: 1723456790},
			}

			if err := jrnl.Write(rec1); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to write record 1: %v", failed, err)
			}
			if err := jrnl.Write(rec2); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to write record 2: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to write two records.", success)

			if _, err := jrnl.GetRecord(3); err == nil {
				t.Fatalf("\t%s\tTest 0:\tShould not be able to read a missing record.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould not be able to read a missing record.", success)

			if err := jrnl.Close(); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to close the journal: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to close the journal.", success)

			jrnl, err = badger.New(journalPath)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to reopen the journal: %v", failed, err)
			}
			defer jrnl.Close()
			t.Logf("\t%s\tTest 0:\tShould be able to reopen the journal.", success)

			record, err := jrnl.GetRecord(1)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to read record 1: %v", failed, err)
			}
			if len(record.Spends) != 1 || record.Spends[0].Nonce != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould read back the stored spends.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to read record 1.", success)

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
