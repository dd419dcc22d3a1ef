// Package docwriter emits serialized documents as frames on an io.Writer.
package docwriter

import (
	"flag"
	"io"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/grafana/jsondoc/pkg/jsondoc"
)

// Config is the configuration block for the document writer.
type Config struct {
	Encoder jsondoc.Config `yaml:"encoder"`
	// Delimiter is written after every document.
	Delimiter string `yaml:"delimiter"`
}

// RegisterFlags registers the flags for the document writer.
func (cfg *Config) RegisterFlags(f *flag.FlagSet) {
	cfg.RegisterFlagsWithPrefix("docwriter.", f)
}

// RegisterFlagsWithPrefix registers the flags for the document writer with a prefix.
func (cfg *Config) RegisterFlagsWithPrefix(prefix string, f *flag.FlagSet) {
	cfg.Encoder.RegisterFlagsWithPrefix(prefix, f)
	f.StringVar(&cfg.Delimiter, prefix+"delimiter", "\n", "Delimiter written after every document.")
}

// Validate validates the document writer settings.
func (cfg *Config) Validate() error {
	if err := cfg.Encoder.Validate(); err != nil {
		return errors.Wrap(err, "invalid encoder config")
	}
	return nil
}

type metrics struct {
	documents prometheus.Counter
	bytes     prometheus.Counter
	failures  prometheus.Counter
}

func newMetrics(r prometheus.Registerer) *metrics {
	return &metrics{
		documents: promauto.With(r).NewCounter(prometheus.CounterOpts{
			Name: "jsondoc_writer_documents_total",
			Help: "Total number of documents written.",
		}),
		bytes: promauto.With(r).NewCounter(prometheus.CounterOpts{
			Name: "jsondoc_writer_bytes_total",
			Help: "Total number of bytes written, delimiters included.",
		}),
		failures: promauto.With(r).NewCounter(prometheus.CounterOpts{
			Name: "jsondoc_writer_failures_total",
			Help: "Total number of documents that could not be written.",
		}),
	}
}

// Writer serializes documents into a reused buffer and writes each one,
// followed by the delimiter, with a single call to the underlying writer.
// It is safe for concurrent use; the documents themselves must not be
// mutated while being written.
type Writer struct {
	enc       *jsondoc.Encoder
	delimiter string
	w         io.Writer
	logger    log.Logger
	metrics   *metrics

	mtx sync.Mutex
	buf []byte
}

func New(cfg Config, w io.Writer, logger log.Logger, r prometheus.Registerer) *Writer {
	return &Writer{
		enc:       jsondoc.NewEncoder(cfg.Encoder),
		delimiter: cfg.Delimiter,
		w:         w,
		logger:    logger,
		metrics:   newMetrics(r),
	}
}

// Write writes a single document.
func (w *Writer) Write(d *jsondoc.Document) error {
	w.mtx.Lock()
	defer w.mtx.Unlock()

	return w.write(d)
}

// WriteBatch writes documents in order and stops at the first failure.
func (w *Writer) WriteBatch(docs []*jsondoc.Document) error {
	w.mtx.Lock()
	defer w.mtx.Unlock()

	for i, d := range docs {
		if err := w.write(d); err != nil {
			return errors.Wrapf(err, "document %d of %d", i+1, len(docs))
		}
	}
	return nil
}

func (w *Writer) write(d *jsondoc.Document) error {
	w.buf = w.enc.Append(w.buf[:0], d)
	w.buf = append(w.buf, w.delimiter...)

	n, err := w.w.Write(w.buf)
	w.metrics.bytes.Add(float64(n))
	if err != nil {
		w.metrics.failures.Inc()
		level.Warn(w.logger).Log("msg", "failed to write document", "bytes", len(w.buf), "written", n, "err", err)
		return errors.Wrap(err, "writing document")
	}
	w.metrics.documents.Inc()
	return nil
}
