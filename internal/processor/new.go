package processor

import (
	"sync"
	"time"

	"github.com/nguyentantai21042004/meeting-flow/internal/config"
	"github.com/nguyentantai21042004/meeting-flow/internal/extractor"
	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
	"github.com/nguyentantai21042004/meeting-flow/internal/prompt"
	"github.com/nguyentantai21042004/meeting-flow/internal/registry"
	"github.com/nguyentantai21042004/meeting-flow/internal/store"
	"github.com/nguyentantai21042004/meeting-flow/internal/transcriber"
)

// Deps are the collaborators a Processor is wired with. Cache and Recorder
// may be nil.
type Deps struct {
	Audio       transcriber.AudioExtractor
	Transcriber transcriber.Transcriber
	Chain       Chain
	Store       store.Store
	Cache       TranscriptCache
	Registry    *registry.Registry
	Recorder    Recorder
	Logger      logger.Logger
}

type implProcessor struct {
	cfg         *config.Config
	audio       transcriber.AudioExtractor
	transcriber transcriber.Transcriber
	chain       Chain
	store       store.Store
	cache       TranscriptCache
	registry    *registry.Registry
	recorder    Recorder
	logger      logger.Logger
	prompt      *prompt.Builder
	extractor   *extractor.Extractor

	background *semaphore
	wg         sync.WaitGroup
}

// New creates a Processor.
func New(cfg *config.Config, deps Deps) Processor {
	reg := deps.Registry
	if reg == nil {
		reg = registry.New(nil)
	}
	rec := deps.Recorder
	if rec == nil {
		rec = nopRecorder{}
	}

	return &implProcessor{
		cfg:         cfg,
		audio:       deps.Audio,
		transcriber: deps.Transcriber,
		chain:       deps.Chain,
		store:       deps.Store,
		cache:       deps.Cache,
		registry:    reg,
		recorder:    rec,
		logger:      deps.Logger,
		prompt:      prompt.New(cfg.Prompt.MaxChars, cfg.Prompt.PrioritizeActions, cfg.Meeting.DefaultDate),
		extractor:   extractor.New(extractor.DirSink{Dir: cfg.Paths.Debug}, deps.Logger),
		background:  newSemaphore(cfg.Performance.MaxBackground),
	}
}

type nopRecorder struct{}

func (nopRecorder) ObserveWrite(string, string) {}
func (nopRecorder) ObserveCache(string) {}
func (nopRecorder) ObserveMeeting(string) {}
func (nopRecorder) ObserveStage(string, time.Time) {}
