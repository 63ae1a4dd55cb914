package editor

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"0", 0, false},
		{" 9999999999 ", 9999999999, false},
		{"", 0, true},
		{"abc", 0, true},
		{"-5", 0, true},
		{"1.5", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseAmount("test", tc.input)
		if tc.wantErr {
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("ParseAmount(%q) error = %v, want ValidationError", tc.input, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseAmount(%q) error = %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("ParseAmount(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestMoneyAmountBounds(t *testing.T) {
	if err := MoneyAmount("balance", 0); err != nil {
		t.Fatalf("MoneyAmount(0) error = %v", err)
	}
	if err := MoneyAmount("balance", MaxMoney); err != nil {
		t.Fatalf("MoneyAmount(max) error = %v", err)
	}
	if err := MoneyAmount("balance", MaxMoney+1); err == nil {
		t.Fatalf("MoneyAmount(max+1) accepted")
	}
	if err := MoneyAmount("balance", -1); err == nil {
		t.Fatalf("MoneyAmount(-1) accepted")
	}
}

func TestQuantityBounds(t *testing.T) {
	if err := Quantity(1_000_000); err != nil {
		t.Fatalf("Quantity(1_000_000) error = %v", err)
	}
	if err := Quantity(1_000_001); err == nil {
		t.Fatalf("Quantity(1_000_001) accepted")
	}
}

func TestRankValueBounds(t *testing.T) {
	if err := RankValue("tier", 100); err != nil {
		t.Fatalf("RankValue(100) error = %v", err)
	}
	// 表单里的 150 必须被拒 / a form value of 150 must be rejected
	err := RankValue("tier", 150)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("RankValue(150) error = %v, want ValidationError", err)
	}
	if verr.Field != "tier" {
		t.Fatalf("ValidationError.Field = %q", verr.Field)
	}
}

func TestEnumValidators(t *testing.T) {
	if err := Quality("Heavenly"); err != nil {
		t.Fatalf("Quality(Heavenly) error = %v", err)
	}
	if err := Quality("Legendary"); err == nil {
		t.Fatalf("Quality(Legendary) accepted")
	}
	if err := Packaging("none"); err != nil {
		t.Fatalf("Packaging(none) error = %v", err)
	}
	if err := Packaging("box"); err == nil {
		t.Fatalf("Packaging(box) accepted")
	}
	if err := ItemFilter("weed"); err != nil {
		t.Fatalf("ItemFilter(weed) error = %v", err)
	}
	if err := ItemFilter("everything"); err == nil {
		t.Fatalf("ItemFilter(everything) accepted")
	}
	if err := RankName("Kingpin"); err != nil {
		t.Fatalf("RankName(Kingpin) error = %v", err)
	}
	if err := RankName("Boss"); err == nil {
		t.Fatalf("RankName(Boss) accepted")
	}
}

func TestProductParams(t *testing.T) {
	if err := ProductParams(1, 5, 1); err != nil {
		t.Fatalf("ProductParams(min) error = %v", err)
	}
	if err := ProductParams(1000, 20, 1_000_000); err != nil {
		t.Fatalf("ProductParams(max) error = %v", err)
	}
	if err := ProductParams(0, 10, 100); err == nil {
		t.Fatalf("ProductParams(count 0) accepted")
	}
	if err := ProductParams(10, 4, 100); err == nil {
		t.Fatalf("ProductParams(id length 4) accepted")
	}
	if err := ProductParams(10, 10, 0); err == nil {
		t.Fatalf("ProductParams(price 0) accepted")
	}
}

func TestOrganisationName(t *testing.T) {
	if err := OrganisationName("Los Pollos"); err != nil {
		t.Fatalf("OrganisationName error = %v", err)
	}
	if err := OrganisationName("   "); err == nil {
		t.Fatalf("blank organisation name accepted")
	}
}
