package util

import (
	"strings"
	"testing"

	"github.com/seanazu/value-hunter/model"
)

func TestReadPresets(t *testing.T) {
	input := `name,marketCapLowerThan,priceLowerThan,averageVolumeMoreThan,exchange,isEtf,active
penny_nasdaq,300000000,5,500000,NASDAQ,,
big_nyse,10000000000,,1000000,NYSE,true,false
,1,1,1,AMEX,,
`

	presets, err := ReadPresets(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadPresets() error = %v", err)
	}
	if len(presets) != 2 {
		t.Fatalf("got %d presets, want 2", len(presets))
	}

	penny := presets[0]
	if penny.Name != "penny_nasdaq" || !penny.Active {
		t.Errorf("first preset = %+v", penny)
	}
	if got := BuildQuery(penny.Filters); got != "marketCapLowerThan=300000000&priceLowerThan=5&averageVolumeMoreThan=500000&exchange=NASDAQ" {
		t.Errorf("first preset query = %q", got)
	}

	big := presets[1]
	if big.Active {
		t.Error("second preset should be inactive")
	}
	if big.Filters.PriceLowerThan != nil {
		t.Errorf("blank price should stay absent, got %v", *big.Filters.PriceLowerThan)
	}
	if big.Filters.IsEtf == nil || !*big.Filters.IsEtf {
		t.Error("isEtf should be true")
	}
	if big.Filters.Exchange == nil || *big.Filters.Exchange != model.ExchangeNyse {
		t.Error("exchange should be NYSE")
	}
}

func TestReadPresets_MissingNameColumn(t *testing.T) {
	_, err := ReadPresets(strings.NewReader("exchange\nNASDAQ\n"))
	if err == nil || !strings.Contains(err.Error(), "name") {
		t.Errorf("expected missing name column error, got %v", err)
	}
}

func TestReadPresets_BadCell(t *testing.T) {
	_, err := ReadPresets(strings.NewReader("name,priceLowerThan\nok,5\nbad,cheap\n"))
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Errorf("expected error on line 3, got %v", err)
	}
}

func TestReadPresets_BadActiveFlag(t *testing.T) {
	_, err := ReadPresets(strings.NewReader("name,active\nx,sometimes\n"))
	if err == nil {
		t.Error("expected error for invalid active flag")
	}
}

func TestReadPresets_UnknownExchange(t *testing.T) {
	_, err := ReadPresets(strings.NewReader("name,exchange\nok,NYSE\nlondon,LSE\n"))
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Errorf("expected exchange error on line 3, got %v", err)
	}
}
