package driver

import (
	"fortio.org/safecast"

	"tyir/internal/ast"
	"tyir/internal/diag"
	"tyir/internal/parser"
	"tyir/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Sheet   *ast.Sheet
	Bag     *diag.Bag
}

func Parse(filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	return parseLoaded(fs, fs.Get(fileID), maxDiagnostics)
}

func parseLoaded(fs *source.FileSet, file *source.File, maxDiagnostics int) (*ParseResult, error) {
	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(maxDiagnostics)
	opts := parser.Options{
		Reporter:  diag.NewDedupReporter(diag.BagReporter{Bag: bag}),
		MaxErrors: maxErrors,
	}
	sheet, _ := parser.ParseSheet(fs, file, opts)

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Sheet:   sheet,
		Bag:     bag,
	}, nil
}

// ParseExpr parses a single type expression given on the command line.
func ParseExpr(text string, maxDiagnostics int) (*source.FileSet, ast.Type, *diag.Bag, error) {
	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, nil, nil, err
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("<expr>", []byte(text)))
	bag := diag.NewBag(maxDiagnostics)
	ty, _ := parser.ParseType(fs, file, parser.Options{
		Reporter:  diag.NewDedupReporter(diag.BagReporter{Bag: bag}),
		MaxErrors: maxErrors,
	})
	return fs, ty, bag, nil
}
