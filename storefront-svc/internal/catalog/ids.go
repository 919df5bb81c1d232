package catalog

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDProvider mints ids for records created through the admin API.
type IDProvider interface {
	NewID(prefix string) string
}

type UUIDProvider struct{}

func (UUIDProvider) NewID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// SequenceProvider yields prefix_1, prefix_2, ... and is meant for tests.
type SequenceProvider struct {
	n atomic.Int64
}

func (p *SequenceProvider) NewID(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, p.n.Add(1))
}

var (
	_ IDProvider = UUIDProvider{}
	_ IDProvider = (*SequenceProvider)(nil)
)
