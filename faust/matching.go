package faust

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// binaryProbeSize is how much of a file is inspected for NUL bytes
// before content search; binaries are skipped.
const binaryProbeSize = 2048

func search(kind SearchType, targets []string, base string, queries []*Query) []Hit {
	switch kind {
	case TypeDir:
		return searchNames(targets, base, queries, true)
	case TypeFile:
		return searchNames(targets, base, queries, false)
	case TypeContent:
		return searchContent(targets, base, queries)
	case TypeMetadata:
		return searchMetadata(targets, base, queries)
	}
	return nil
}

func searchNames(targets []string, base string, queries []*Query, wantDir bool) []Hit {
	var hits []Hit
	for _, path := range targets {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() != wantDir {
			continue
		}
		q := anyMatch(queries, filepath.Base(path))
		if q == nil {
			continue
		}
		kind := TypeFile
		if wantDir {
			kind = TypeDir
		}
		hits = append(hits, Hit{Base: base, Path: path, IsDir: wantDir, Kind: kind, Query: q})
	}
	return hits
}

func searchContent(targets []string, base string, queries []*Query) []Hit {
	var hits []Hit
	for _, path := range targets {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}

		f, err := os.Open(path)
		if err != nil {
			continue
		}

		head := make([]byte, binaryProbeSize)
		n, _ := f.Read(head)
		if bytes.IndexByte(head[:n], 0) >= 0 {
			f.Close()
			continue
		}
		if _, err := f.Seek(0, 0); err != nil {
			f.Close()
			continue
		}

		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		lineNo := 0
		for scanner.Scan() {
			lineNo++
			line := scanner.Text()
			if q := anyMatch(queries, line); q != nil {
				hits = append(hits, Hit{
					Base: base, Path: path, Kind: TypeContent,
					Query: q, FileLine: lineNo, Line: line,
				})
			}
		}
		f.Close()
	}
	return hits
}

func searchMetadata(targets []string, base string, queries []*Query) []Hit {
	var hits []Hit
	for _, path := range targets {
		meta, isDir, err := metadataLine(path)
		if err != nil {
			continue
		}
		q := anyMatch(queries, meta)
		if q == nil {
			continue
		}
		hits = append(hits, Hit{
			Base: base, Path: path, IsDir: isDir, Kind: TypeMetadata,
			Query: q, Line: meta,
		})
	}
	return hits
}

// metadataLine renders "mode=... size=... mtime=..." for matching.
func metadataLine(path string) (string, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", false, err
	}
	line := fmt.Sprintf("mode=%s size=%d mtime=%s",
		info.Mode().String(), info.Size(), info.ModTime().Format("2006-01-02T15:04:05"))
	return line, info.IsDir(), nil
}

func anyMatch(queries []*Query, text string) *Query {
	for _, q := range queries {
		if q.Pattern.MatchString(text) {
			return q
		}
	}
	return nil
}
