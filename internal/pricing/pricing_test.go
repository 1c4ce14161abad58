package pricing

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func date(s string) time.Time {
    t, err := time.Parse("2006-01-02", s)
    if err != nil {
        panic(err)
    }
    return t
}

func TestComputeExampleScenario(t *testing.T) {
    // nightly=100000, 2025-01-01 -> 2025-01-03: two nights.
    q, err := Compute(100000, date("2025-01-01"), date("2025-01-03"))
    require.NoError(t, err)
    assert.Equal(t, 2, q.Nights)
    assert.Equal(t, int64(200000), q.Subtotal)
    assert.Equal(t, int64(20000), q.ServiceFee)
    assert.Equal(t, int64(10000), q.Taxes)
    assert.Equal(t, int64(230000), q.Total)
}

func TestComputeTotalIdentity(t *testing.T) {
    rates := []int64{0, 1, 999, 45000, 100000, 1234567}
    for _, r := range rates {
        for nights := 1; nights <= 14; nights++ {
            out := date("2025-03-01").AddDate(0, 0, nights)
            q, err := Compute(r, date("2025-03-01"), out)
            require.NoError(t, err)
            require.Equal(t, nights, q.Nights)
            assert.Equal(t, q.Subtotal+q.ServiceFee+q.Taxes, q.Total)
            assert.Equal(t, r*int64(nights), q.Subtotal)
        }
    }
}

func TestComputeRejectsInvalidStay(t *testing.T) {
    // check-out equal to check-in
    _, err := Compute(50000, date("2025-01-01"), date("2025-01-01"))
    assert.ErrorIs(t, err, ErrInvalidStay)

    // check-out before check-in
    _, err = Compute(50000, date("2025-01-05"), date("2025-01-02"))
    assert.ErrorIs(t, err, ErrInvalidStay)

    // negative nightly rate
    _, err = Compute(-1, date("2025-01-01"), date("2025-01-02"))
    assert.ErrorIs(t, err, ErrInvalidStay)
}

func TestNightsRoundsPartialDaysUp(t *testing.T) {
    in := time.Date(2025, 1, 1, 15, 0, 0, 0, time.UTC)
    out := time.Date(2025, 1, 2, 11, 0, 0, 0, time.UTC)
    // less than 24h still counts as one night
    assert.Equal(t, 1, Nights(in, out))

    out = time.Date(2025, 1, 3, 11, 0, 0, 0, time.UTC)
    // 44h -> two nights
    assert.Equal(t, 2, Nights(in, out))
}

func TestRoundingHalfUp(t *testing.T) {
    // subtotal=15: fee = round(1.5) = 2, tax = round(0.75) = 1
    q, err := Compute(15, date("2025-01-01"), date("2025-01-02"))
    require.NoError(t, err)
    assert.Equal(t, int64(2), q.ServiceFee)
    assert.Equal(t, int64(1), q.Taxes)
    assert.Equal(t, int64(18), q.Total)
}
