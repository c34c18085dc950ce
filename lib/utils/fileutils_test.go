package utils

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/gravitational/trace"
	. "gopkg.in/check.v1"
)

type FileutilsSuite struct{}

var _ = Suite(&FileutilsSuite{})

func (s *FileutilsSuite) TestWriteFileAtomic(c *C) {
	dir := c.MkDir()
	path := filepath.Join(dir, "key.pem")
	c.Assert(ioutil.WriteFile(path, []byte("old contents"), 0644), IsNil)

	c.Assert(WriteFileAtomic(path, []byte("new"), 0600), IsNil)
	data, err := ReadPath(path)
	c.Assert(err, IsNil)
	c.Assert(string(data), Equals, "new")

	fi, err := os.Stat(path)
	c.Assert(err, IsNil)
	c.Assert(fi.Mode().Perm(), Equals, os.FileMode(0600))

	// no temporary files are left behind
	entries, err := ioutil.ReadDir(dir)
	c.Assert(err, IsNil)
	c.Assert(entries, HasLen, 1)
}

func (s *FileutilsSuite) TestWriteFileAtomicMissingDir(c *C) {
	err := WriteFileAtomic(filepath.Join(c.MkDir(), "missing", "key.pem"), []byte("key"), 0600)
	c.Assert(trace.IsNotFound(err), Equals, true, Commentf("%v", err))
}

func (s *FileutilsSuite) TestIsFile(c *C) {
	dir := c.MkDir()
	path := filepath.Join(dir, "file")
	c.Assert(ioutil.WriteFile(path, nil, 0600), IsNil)

	isFile, err := IsFile(path)
	c.Assert(err, IsNil)
	c.Assert(isFile, Equals, true)

	isFile, err = IsFile(dir)
	c.Assert(err, IsNil)
	c.Assert(isFile, Equals, false)

	_, err = IsFile(filepath.Join(dir, "missing"))
	c.Assert(trace.IsNotFound(err), Equals, true)
}

func (s *FileutilsSuite) TestReadPathMissing(c *C) {
	_, err := ReadPath(filepath.Join(c.MkDir(), "missing"))
	c.Assert(trace.IsNotFound(err), Equals, true)
}
