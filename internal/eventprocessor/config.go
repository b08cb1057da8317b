// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package eventprocessor

import (
	"time"

	"github.com/luxboard/luxboard/internal/config"
)

// PublisherConfig holds NATS publisher tuning.
type PublisherConfig struct {
	URL             string
	MaxReconnects   int
	ReconnectWait   time.Duration
	ReconnectBuffer int
	TrackMsgID      bool // use Nats-Msg-Id for broker-side deduplication
}

// DefaultPublisherConfig returns production defaults for the publisher.
func DefaultPublisherConfig(url string) PublisherConfig {
	return PublisherConfig{
		URL:             url,
		MaxReconnects:   -1,
		ReconnectWait:   2 * time.Second,
		ReconnectBuffer: 8 * 1024 * 1024,
		TrackMsgID:      true,
	}
}

// SubscriberConfig holds NATS subscriber tuning.
type SubscriberConfig struct {
	URL              string
	DurableName      string
	QueueGroup       string
	SubscribersCount int
	AckWaitTimeout   time.Duration
	MaxDeliver       int
	MaxAckPending    int
	CloseTimeout     time.Duration
	MaxReconnects    int
	ReconnectWait    time.Duration

	// StreamName binds the subscriber to an existing stream. Required
	// for wildcard topics: stream names cannot contain wildcards, so
	// auto-provisioning from the topic would fail.
	StreamName string
}

// DefaultSubscriberConfig returns production defaults for the
// subscriber.
func DefaultSubscriberConfig(url string) SubscriberConfig {
	return SubscriberConfig{
		URL:              url,
		DurableName:      "beacon-processor",
		QueueGroup:       "processors",
		SubscribersCount: 1,
		AckWaitTimeout:   30 * time.Second,
		MaxDeliver:       5,
		MaxAckPending:    1000,
		CloseTimeout:     30 * time.Second,
		MaxReconnects:    -1,
		ReconnectWait:    2 * time.Second,
	}
}

// SubscriberConfigFrom maps the application consumer settings onto a
// subscriber config bound to the given stream.
func SubscriberConfigFrom(url string, cc *config.ConsumerConfig, streamName string) SubscriberConfig {
	sc := DefaultSubscriberConfig(url)
	sc.StreamName = streamName
	if cc == nil {
		return sc
	}
	if cc.DurableName != "" {
		sc.DurableName = cc.DurableName
	}
	if cc.QueueGroup != "" {
		sc.QueueGroup = cc.QueueGroup
	}
	if cc.SubscribersCount > 0 {
		sc.SubscribersCount = cc.SubscribersCount
	}
	return sc
}

// BatcherConfig holds batch buffer tuning for the store writer.
type BatcherConfig struct {
	BatchSize     int
	FlushInterval time.Duration
}

// DefaultBatcherConfig returns production defaults for the batcher.
func DefaultBatcherConfig() BatcherConfig {
	return BatcherConfig{
		BatchSize:     500,
		FlushInterval: 5 * time.Second,
	}
}

// BatcherConfigFrom maps the application consumer settings onto a
// batcher config.
func BatcherConfigFrom(cc *config.ConsumerConfig) BatcherConfig {
	bc := DefaultBatcherConfig()
	if cc == nil {
		return bc
	}
	if cc.BatchSize > 0 {
		bc.BatchSize = cc.BatchSize
	}
	if cc.FlushInterval > 0 {
		bc.FlushInterval = cc.FlushInterval
	}
	return bc
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	Name             string
	MaxRequests      uint32        // allowed in half-open state
	Interval         time.Duration // reset interval for counts
	Timeout          time.Duration // time to stay open
	FailureThreshold uint32        // consecutive failures before opening
}

// DefaultCircuitBreakerConfig returns production defaults.
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          10 * time.Second,
		FailureThreshold: 5,
	}
}
