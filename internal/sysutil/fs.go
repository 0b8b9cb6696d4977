// Package sysutil has small OS filesystem helpers.
package sysutil

import (
	"fmt"
	"io"
	"os"
)

// CopyFile copies the file at src to dest, carrying over the file mode so
// that copied archive members keep their permissions.
func CopyFile(src, dest string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("error opening source file: %s", err)
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("error inspecting source file: %s", err)
	}

	destFile, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("error opening destination file: %s", err)
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, srcFile)
	if err != nil {
		return fmt.Errorf("writing to destination file failed: %s", err)
	}

	return nil
}
