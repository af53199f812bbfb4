package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/catlog/internal/errors"
)

// ErrExists is returned by CopyFile when the destination already exists.
var ErrExists = errors.New("destination already exists")

// CopyFile copies src to dst, keeping the source permissions. It never
// overwrites: an existing dst yields ErrExists.
func CopyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "opening source file")
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return errors.Wrap(err, "stat source file")
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, srcInfo.Mode().Perm())
	if err != nil {
		if os.IsExist(err) {
			return errors.Wrapf(ErrExists, "%s", dst)
		}
		return errors.Wrap(err, "creating destination file")
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		os.Remove(dst)
		return errors.Wrap(err, "copying file")
	}

	if err := dstFile.Close(); err != nil {
		os.Remove(dst)
		return errors.Wrap(err, "closing destination file")
	}

	return nil
}
