package stream

import "os"

// fileReader adapts *os.File to Reader, adding Tell (Seek is already
// there) and Size via Stat. No library in the retrieved pack wraps local
// file I/O; os.File already satisfies everything but Tell/Size, so this
// is a thin adapter rather than a reimplementation.
type fileReader struct {
	f *os.File
}

func openFile(path string, _ Options) (Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &fileReader{f: f}, nil
}

func (r *fileReader) Read(p []byte) (int, error) { return r.f.Read(p) }

func (r *fileReader) Seek(offset int64, whence int) (int64, error) {
	return r.f.Seek(offset, whence)
}

func (r *fileReader) Tell() (int64, error) {
	return r.f.Seek(0, os.SEEK_CUR)
}

func (r *fileReader) Size() (int64, bool) {
	info, err := r.f.Stat()
	if err != nil {
		return 0, false
	}
	return info.Size(), true
}

func (r *fileReader) Close() error { return r.f.Close() }
