package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ndewijer/Trading-Journal-Backend/internal/model"
)

// defaultInstruments is used when no instruments file exists.
var defaultInstruments = []model.Instrument{
	{Name: "NIFTY", Type: model.InstrumentTypeIndex, LotSize: 75, ReferencePrice: 24500},
	{Name: "BANKNIFTY", Type: model.InstrumentTypeIndex, LotSize: 35, ReferencePrice: 52000},
	{Name: "FINNIFTY", Type: model.InstrumentTypeIndex, LotSize: 65, ReferencePrice: 23500},
	{Name: "SENSEX", Type: model.InstrumentTypeIndex, LotSize: 20, ReferencePrice: 80500},
}

// Instruments is the configured instrument catalogue, keyed by upper-cased name.
type Instruments struct {
	byName         map[string]model.Instrument
	defaultLotSize float64
}

type instrumentsFile struct {
	Instruments []model.Instrument `yaml:"instruments"`
}

// LoadInstruments reads the instrument catalogue from a YAML file:
//
//	instruments:
//	  - name: NIFTY
//	    type: index
//	    lot_size: 75
//	    reference_price: 24500
//
// A missing file falls back to the built-in index list. defaultLotSize is used
// for instruments that are not listed.
func LoadInstruments(path string, defaultLotSize float64) (*Instruments, error) {
	list := defaultInstruments

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read instruments file: %w", err)
		default:
			var file instrumentsFile
			if err := yaml.Unmarshal(data, &file); err != nil {
				return nil, fmt.Errorf("failed to parse instruments file: %w", err)
			}
			list = file.Instruments
		}
	}

	return NewInstruments(list, defaultLotSize)
}

// NewInstruments builds a catalogue from a list, rejecting blank names and
// non-positive lot sizes.
func NewInstruments(list []model.Instrument, defaultLotSize float64) (*Instruments, error) {
	if defaultLotSize <= 0 {
		defaultLotSize = 1
	}
	byName := make(map[string]model.Instrument, len(list))
	for _, inst := range list {
		key := strings.ToUpper(strings.TrimSpace(inst.Name))
		if key == "" {
			return nil, fmt.Errorf("instrument name is required")
		}
		if inst.LotSize <= 0 {
			return nil, fmt.Errorf("instrument %s: lot_size must be positive", inst.Name)
		}
		byName[key] = inst
	}
	return &Instruments{byName: byName, defaultLotSize: defaultLotSize}, nil
}

// Lookup returns the instrument with the given name, case-insensitively.
func (i *Instruments) Lookup(name string) (model.Instrument, bool) {
	if i == nil {
		return model.Instrument{}, false
	}
	inst, ok := i.byName[strings.ToUpper(strings.TrimSpace(name))]
	return inst, ok
}

// LotSize returns the contract multiplier for an instrument, or the default
// lot size when the instrument is not configured.
func (i *Instruments) LotSize(name string) float64 {
	if inst, ok := i.Lookup(name); ok {
		return inst.LotSize
	}
	if i == nil {
		return 1
	}
	return i.defaultLotSize
}

// All returns every configured instrument sorted by name.
func (i *Instruments) All() []model.Instrument {
	if i == nil {
		return []model.Instrument{}
	}
	list := make([]model.Instrument, 0, len(i.byName))
	for _, inst := range i.byName {
		list = append(list, inst)
	}
	sort.Slice(list, func(a, b int) bool { return list[a].Name < list[b].Name })
	return list
}
