package pipeline

import (
	"github.com/nguyentantai21042004/subcleanser/internal/logger"
)

type implProcessor struct {
	logger logger.Logger
}

// New creates a new Processor instance. Everything a run needs arrives on
// the Request, so the processor itself carries only its collaborators.
func New(log logger.Logger) Processor {
	return &implProcessor{
		logger: log,
	}
}
