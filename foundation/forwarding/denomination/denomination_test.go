package denomination_test

import (
	"testing"

	"github.com/relaylabs/relay/foundation/forwarding/denomination"
)

const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Parse(t *testing.T) {
	type table struct {
		name   string
		amount string
		unit   string
		value  uint64
		fails  bool
	}

	tt := []table{
		{"base", "250", "rel", 250, false},
		{"kilo", "1.5", "krel", 1_500, false},
		{"mega", "0.000001", "mrel", 1, false},
		{"giga", "2", "grel", 2_000_000_000, false},
		{"zero", "0", "rel", 0, false},
		{"case", "3", "KRel", 3_000, false},
		{"fraction", "0.5", "rel", 0, true},
		{"negative", "-1", "rel", 0, true},
		{"unknown", "1", "wei", 0, true},
		{"garbage", "abc", "rel", 0, true},
	}

	t.Log("Given the need to parse amounts into rel.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling %s: %s %s.", testID, tst.name, tst.amount, tst.unit)
			{
				value, err := denomination.Parse(tst.amount, tst.unit)
				switch {
				case tst.fails:
					if err == nil {
						t.Fatalf("\t%s\tTest %d:\tShould not be able to parse the amount.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould not be able to parse the amount.", success, testID)

				default:
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to parse the amount: %s", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to parse the amount.", success, testID)

					if value != tst.value {
						t.Fatalf("\t%s\tTest %d:\tShould get back %d rel, got %d.", failed, testID, tst.value, value)
					}
					t.Logf("\t%s\tTest %d:\tShould get back %d rel.", success, testID, value)
				}
			}
		}
	}
}

func Test_Format(t *testing.T) {
	t.Log("Given the need to format rel values in other units.")
	{
		t.Logf("\tTest 0:\tWhen formatting 1500 rel as krel.")
		{
			got, err := denomination.Format(1_500, denomination.KRel)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to format the value: %s", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to format the value.", success)

			if got != "1.5" {
				t.Fatalf("\t%s\tTest 0:\tShould get back \"1.5\", got %q.", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould get back \"1.5\".", success)
		}

		t.Logf("\tTest 1:\tWhen formatting with an unknown unit.")
		{
			if _, err := denomination.Format(1, "wei"); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould not be able to format the value.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould not be able to format the value.", success)
		}
	}
}
