package fuzztests

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"vesszo/internal/rules"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

var handSeeds = []string{
	"",
	"Tudom hogy jön.\n",
	"Látom, hogy megy.",
	"Nem csak a kutya hanem a macska is.",
	"Mondd meg amit tudsz! Ha nem, akkor hallgass?",
	"Szép idő van ugye\r\nés holnap is.",
	"(zárójelben) 12,5 százalék mert \"idézet\" ; stb.",
	"a🙂b, hogy\tc",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range handSeeds {
		f.Add([]byte(s))
	}
	addTableSeeds(f)
	addTestdataSeeds(f)
}

// addTableSeeds turns every embedded trigger into a sentence without a comma.
func addTableSeeds(f *testing.F) {
	for _, kind := range rules.Kinds() {
		table, err := rules.Default(kind, rules.Options{})
		if err != nil {
			continue
		}
		for _, r := range table.Rules {
			line := "Azt mondta " + r.Word + " jön"
			if len(r.Followers) > 0 {
				line += " " + r.Followers[0] + " megy"
			}
			f.Add([]byte(line + ".\n"))
		}
	}
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем текстовые файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".txt", ".md":
		default:
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(bytes.TrimSpace(src)))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
