// Package export writes fixed-shape history encodings to NumPy archives for learners that
// live outside the Go process.
package export

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sbinet/npyio/npz"
	"gonum.org/v1/gonum/mat"

	"classicgame/agent"
)

// Batch encodes every history as one row of a (len(histories), encoding.Size()) matrix.
func Batch(histories []agent.History, encoding agent.HistoryEncoding) (*mat.Dense, error) {
	if len(histories) == 0 {
		return nil, errors.New("no histories to encode")
	}
	buf := make([]float32, encoding.Size())
	m := mat.NewDense(len(histories), encoding.Size(), nil)
	for i, h := range histories {
		if err := encoding.EncodeInto(h, buf); err != nil {
			return nil, errors.Wrapf(err, "history %d", i)
		}
		for j, v := range buf {
			m.Set(i, j, float64(v))
		}
	}
	return m, nil
}

// Episode is one named entry of an archive.
type Episode struct {
	Name      string
	Encodings *mat.Dense
}

// Write stores every episode under its name in an npz archive written to w.
func Write(w io.Writer, episodes []Episode) error {
	zw := npz.NewWriter(w)
	for _, ep := range episodes {
		if err := zw.Write(ep.Name, ep.Encodings); err != nil {
			_ = zw.Close()
			return errors.Wrapf(err, "write %s", ep.Name)
		}
	}
	return errors.Wrap(zw.Close(), "close npz archive")
}

// WriteFile is Write to a new file at path.
func WriteFile(path string, episodes []Episode) error {
	zw, err := npz.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	for _, ep := range episodes {
		if err := zw.Write(ep.Name, ep.Encodings); err != nil {
			_ = zw.Close()
			return errors.Wrapf(err, "write %s", ep.Name)
		}
	}
	return errors.Wrapf(zw.Close(), "close %s", path)
}

// Read loads one named episode from an archive of the given size.
func Read(r io.ReaderAt, size int64, name string) (*mat.Dense, error) {
	zr, err := npz.NewReader(r, size)
	if err != nil {
		return nil, errors.Wrap(err, "open npz archive")
	}
	defer zr.Close()
	var m mat.Dense
	if err := zr.Read(name, &m); err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}
	return &m, nil
}
