// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stream

// Default read limits. DefaultQuota is the byte budget charged with
// the in-memory size estimate while parsing; DefaultMaxDepth bounds
// LIST/COMPOUND nesting.
const (
	DefaultQuota    int64 = 2 * 1024 * 1024
	DefaultMaxDepth       = 512
)

// Hard allocation caps, independent of the quota. They apply even
// when the quota is disabled, so a single declared length can never
// force a pathological allocation.
const (
	maxByteArrayLength = 16 * 1024 * 1024
	maxArrayElements   = 16 * 1024 * 1024
)

// limits is the configurable portion of a Reader.
type limits struct {
	quota     int64
	unlimited bool
	maxDepth  int
}

func defaultLimits() limits {
	return limits{quota: DefaultQuota, maxDepth: DefaultMaxDepth}
}

// Option configures a Reader.
type Option func(*limits)

// WithQuota sets the read quota in estimated bytes.
func WithQuota(quota int64) Option {
	return func(l *limits) {
		l.quota = quota
		l.unlimited = false
	}
}

// WithUnlimitedQuota disables quota accounting. The array hard caps
// and the depth bound still apply.
func WithUnlimitedQuota() Option {
	return func(l *limits) {
		l.unlimited = true
	}
}

// WithMaxDepth sets the maximum LIST/COMPOUND nesting depth.
func WithMaxDepth(depth int) Option {
	return func(l *limits) {
		l.maxDepth = depth
	}
}
