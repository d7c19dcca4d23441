package selfplay

import (
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/pkg/errors"
)

// WriteExamples writes training examples to a parquet file, the exchange
// format the training side consumes.
func WriteExamples(path string, examples []Example) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	w := parquet.NewGenericWriter[Example](f)
	if _, err := w.Write(examples); err != nil {
		return errors.Wrap(err, "write examples")
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "close parquet writer")
	}
	return nil
}

// ReadExamples loads every example from a parquet file.
func ReadExamples(path string) ([]Example, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	r := parquet.NewGenericReader[Example](f)
	defer r.Close()

	examples := make([]Example, 0, r.NumRows())
	buf := make([]Example, 64)
	for {
		n, err := r.Read(buf)
		examples = append(examples, buf[:n]...)
		if err == io.EOF {
			return examples, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "read examples")
		}
	}
}
