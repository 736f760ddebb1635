package commands

import (
	"io"
	"text/tabwriter"

	"github.com/c360studio/semreg/codec"
)

// writeEncoded marshals v with the named codec and writes it out. The format
// name resolves through the codec registry, so any registered codec works as
// an output format.
func writeEncoded(w io.Writer, format string, v any) error {
	data, err := codec.Encode(format, v)
	if err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	_, err = w.Write(data)
	return err
}

// newTable returns a tabwriter configured the way all commands print tables.
func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}
