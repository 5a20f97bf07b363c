package service

import (
	"testing"
	"time"

	"exchange-ledger/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestNewReference_Format(t *testing.T) {
	now := time.UnixMilli(1714550400123)

	mm := NewReference(domain.DirectionMMK2THB, now)
	th := NewReference(domain.DirectionTHB2MMK, now)

	assert.Regexp(t, referencePattern, mm)
	assert.Regexp(t, referencePattern, th)
	assert.Equal(t, "MMTHB-0123-", mm[:11])
	assert.Equal(t, "THBMM-0123-", th[:11])
}

func TestNewReference_PadsTimeFragment(t *testing.T) {
	ref := NewReference(domain.DirectionMMK2THB, time.UnixMilli(1700000000007))
	assert.Equal(t, "MMTHB-0007-", ref[:11])
}
