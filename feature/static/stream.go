package static

import (
	"errors"
	"io"

	"go.uber.org/zap"
)

// stream wraps a file body so read failures during the response are logged;
// the connection is then abandoned by the server.
type stream struct {
	rc     io.ReadCloser
	name   string
	logger *zap.Logger
	read   int64
}

func (s *stream) Read(p []byte) (int, error) {
	n, err := s.rc.Read(p)
	s.read += int64(n)
	if err != nil && !errors.Is(err, io.EOF) {
		s.logger.Warn("File stream aborted",
			zap.String("file", s.name),
			zap.Int64("bytes_sent", s.read),
			zap.Error(err))
	}
	return n, err
}

func (s *stream) Close() error {
	return s.rc.Close()
}
