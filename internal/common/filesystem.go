package common

import (
	"os"
	"path/filepath"
)

func MkdirForFile(fileName string) error {
	return os.MkdirAll(filepath.Dir(fileName), os.ModePerm)
}
