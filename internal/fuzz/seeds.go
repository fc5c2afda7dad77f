package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB - ограничение для тестового корпуса
)

var typeSeeds = []string{
	"u8",
	"()",
	"(u8,)",
	"!",
	"_",
	"&'a mut [T]",
	"*const *mut u8",
	"[u8; 4]",
	"[[u8; N]; 2]",
	"fn(u8, &str) -> bool",
	"unsafe extern \"C\" fn(i32, ...)",
	"impl Iterator<Item = u8> + Send",
	"dyn Fn(u8) -> u8 + 'static",
	"Box<dyn for<'a> Fn(&'a str)>",
	"<Vec<T> as IntoIterator>::Item",
	"<T>::Output",
	"::std::vec::Vec<u8>",
	"T::Assoc<'a>",
	"(u8",
	"&",
	"fn(x:)",
	"Vec<",
	"<<<<",
	">>>>",
	"*",
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, s := range typeSeeds {
		f.Add([]byte(s))
		f.Add([]byte("type A = " + s + ";\n"))
	}
	f.Add([]byte{})
	f.Add([]byte("type A = u8;\ntype B<T> = (T, A);\n"))
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "hir", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по testdata, берём все *.tys
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".tys" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) > maxSeedBytes {
		src = src[:maxSeedBytes]
	}
	return append([]byte(nil), src...)
}
