package main

import (
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4"
)

// unpackArchive uncompresses an uploaded archive next to itself and removes
// the original, returning the new path. Non-archive files come back as "".
// Usage exports get big; libraries tend to hand them around gzipped or
// zipped.
func unpackArchive(filePath string) (string, error) {
	switch filepath.Ext(filePath) {
	case ".zip":
		return unpackZip(filePath)
	case ".gz":
		return unpackStream(filePath, ".gz", func(r io.Reader) (io.Reader, error) {
			return gzip.NewReader(r)
		})
	case ".lz4":
		return unpackStream(filePath, ".lz4", func(r io.Reader) (io.Reader, error) {
			return lz4.NewReader(r), nil
		})
	}
	return "", nil
}

// unpackStream handles the single-file formats: wrap the file in a
// decompressing reader and copy it out.
func unpackStream(filePath, ext string, wrap func(io.Reader) (io.Reader, error)) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	r, err := wrap(file)
	if err != nil {
		return "", err
	}

	destPath := strings.TrimSuffix(filePath, ext)
	if err := copyToFile(destPath, r); err != nil {
		return "", err
	}
	if err := os.Remove(filePath); err != nil {
		return "", err
	}
	return destPath, nil
}

// unpackZip extracts the largest entry, which is the data file in every
// export bundle seen so far.
func unpackZip(filePath string) (string, error) {
	r, err := zip.OpenReader(filePath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	var largest *zip.File
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if largest == nil || f.UncompressedSize64 > largest.UncompressedSize64 {
			largest = f
		}
	}
	if largest == nil {
		return "", nil
	}

	rc, err := largest.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	destPath := filepath.Join(filepath.Dir(filePath), filepath.Base(largest.Name))
	if err := copyToFile(destPath, rc); err != nil {
		return "", err
	}
	if err := os.Remove(filePath); err != nil {
		return "", err
	}
	return destPath, nil
}

func copyToFile(destPath string, r io.Reader) error {
	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, r)
	return err
}
