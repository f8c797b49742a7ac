package vocab

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v2"
)

// Vocabulary holds the closed cashier and bank name sets. Entries may only be
// attributed to a known cashier; bank membership is advisory at append time
// (free-text banks are accepted by the ledger, matching the historical data).
type Vocabulary struct {
	Cashiers []string `yaml:"cashiers"`
	Banks    []string `yaml:"banks"`
}

// Default returns the built-in vocabulary, used when no vocab file exists.
func Default() *Vocabulary {
	v := &Vocabulary{
		Cashiers: []string{"Misrak", "Emush", "Adanu", "Yemisrach", "Ejigayehu", "Tigist"},
		Banks: []string{
			"Abay", "Amhara", "Awash", "Bank of Abyssinia", "Bunna",
			"CBE", "Dashen", "Enat", "Hibret", "Lion", "Nib", "Telebirr", "Wegagen", "Zemen",
		},
	}
	v.normalize()
	return v
}

// Load reads the vocabulary from a YAML file. A missing file falls back to
// the built-in defaults; a malformed file is an error.
func Load(vocabFile string) (*Vocabulary, error) {
	var vocabPath string
	if filepath.IsAbs(vocabFile) {
		vocabPath = vocabFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		vocabPath = filepath.Join(wd, vocabFile)
	}

	data, err := os.ReadFile(vocabPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("unable to read %s: %w", vocabFile, err)
	}

	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", vocabFile, err)
	}

	if len(v.Cashiers) == 0 {
		return nil, fmt.Errorf("%s defines no cashiers", vocabFile)
	}
	if len(v.Banks) == 0 {
		return nil, fmt.Errorf("%s defines no banks", vocabFile)
	}

	v.normalize()
	return &v, nil
}

func (v *Vocabulary) normalize() {
	sort.Strings(v.Cashiers)
	sort.Strings(v.Banks)
}

// HasCashier reports whether name is a known cashier.
func (v *Vocabulary) HasCashier(name string) bool {
	return contains(v.Cashiers, name)
}

// HasBank reports whether name is a known bank.
func (v *Vocabulary) HasBank(name string) bool {
	return contains(v.Banks, name)
}

func contains(names []string, name string) bool {
	i := sort.SearchStrings(names, name)
	return i < len(names) && names[i] == name
}
