package common

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/gravitational/detrsa/lib/constants"
	"github.com/gravitational/detrsa/lib/utils"

	"gopkg.in/alecthomas/kingpin.v2"
)

// GetReader returns the reader for the provided file or stdin if the
// filename is "-"
func GetReader(filename string) (io.ReadCloser, error) {
	if filename == "-" {
		return ioutil.NopCloser(os.Stdin), nil
	}
	return utils.ReaderForPath(filename)
}

// Format is the CLI parser for output format flag
func Format(s kingpin.Settings) *constants.Format {
	var f constants.Format
	s.SetValue(&f)
	return &f
}
