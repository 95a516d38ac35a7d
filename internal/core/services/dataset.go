package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"news-sentiment-service/internal/core/domain"
	"news-sentiment-service/internal/core/ports/output"
)

// DatasetReader exposes the current snapshot to the query services.
type DatasetReader interface {
	Current() (*domain.Dataset, error)
}

// DatasetService owns the loaded gold layer snapshot.
type DatasetService struct {
	source  ports.ArticleSource
	metrics ports.MetricsRecorder

	mu      sync.Mutex // serialises reloads
	current atomic.Pointer[domain.Dataset]
}

func NewDatasetService(source ports.ArticleSource, metrics ports.MetricsRecorder) *DatasetService {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &DatasetService{source: source, metrics: metrics}
}

// Reload reads the source and swaps in a fresh snapshot. On failure the
// previous snapshot stays in place.
func (s *DatasetService) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	log.WithField("source", s.source.Describe()).Info("loading dataset")

	ds, err := s.source.Load(ctx)
	if err != nil {
		s.metrics.ObserveLoad(false, 0, time.Since(start))
		log.WithError(err).WithField("source", s.source.Describe()).Error("dataset load failed")
		return err
	}

	ds.Normalize()
	if ds.Source == "" {
		ds.Source = s.source.Describe()
	}
	ds.LoadedAt = time.Now()
	ds.LoadDuration = time.Since(start)
	s.current.Store(ds)

	s.metrics.ObserveLoad(true, len(ds.Articles), ds.LoadDuration)
	log.WithFields(log.Fields{
		"source":      ds.Source,
		"rows":        len(ds.Articles),
		"files":       ds.Files,
		"columns":     ds.Columns.Len(),
		"duration_ms": ds.LoadDuration.Milliseconds(),
	}).Info("dataset loaded")
	return nil
}

func (s *DatasetService) Current() (*domain.Dataset, error) {
	ds := s.current.Load()
	if ds == nil {
		return nil, domain.ErrDatasetNotLoaded
	}
	return ds, nil
}

func (s *DatasetService) Info() (*domain.DatasetInfo, error) {
	ds, err := s.Current()
	if err != nil {
		return nil, err
	}
	return &domain.DatasetInfo{
		Source:       ds.Source,
		Rows:         len(ds.Articles),
		Files:        ds.Files,
		Columns:      ds.Columns.List(),
		LoadedAt:     ds.LoadedAt,
		LoadDuration: ds.LoadDuration,
	}, nil
}
