package gateway

import "time"

// MetricsRecorder coleta o resultado de cada transação processada.
type MetricsRecorder interface {
	RecordTransaction(txType, outcome string, duration time.Duration)
}

// NoopMetrics é usado quando nenhum coletor é configurado.
type NoopMetrics struct{}

func (NoopMetrics) RecordTransaction(string, string, time.Duration) {}
