package server

import "errors"

var (
	ErrMissingAddress       = errors.New("server address is required")
	ErrIncompleteTLS        = errors.New("both TLS certificate and key files are required")
	ErrLoadCertificate      = errors.New("failed to load TLS certificate")
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrListen               = errors.New("failed to listen")
	ErrServe                = errors.New("server error")
	ErrShutdown             = errors.New("server shutdown error")
)
