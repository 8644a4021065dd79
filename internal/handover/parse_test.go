package handover_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manasa.shop/internal/handover"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		speech string
		want   handover.Parsed
	}{
		{
			name:   "full sentence",
			speech: "gave 500 to ramesh for milk change returned 50",
			want: handover.Parsed{
				AmountGiven:    500,
				ChangeReturned: 50,
				NetAmount:      450,
				GivenTo:        "ramesh",
				Reason:         "milk",
			},
		},
		{
			name:   "no change returned",
			speech: "gave 200 to suresh for vegetables",
			want: handover.Parsed{
				AmountGiven: 200,
				NetAmount:   200,
				GivenTo:     "suresh",
				Reason:      "vegetables",
			},
		},
		{
			name:   "no reason defaults to other",
			speech: "handed 1000 to priya",
			want: handover.Parsed{
				AmountGiven: 1000,
				NetAmount:   1000,
				GivenTo:     "priya",
				Reason:      "other",
			},
		},
		{
			name:   "amount only",
			speech: "300",
			want: handover.Parsed{
				AmountGiven: 300,
				NetAmount:   300,
				Reason:      "other",
			},
		},
		{
			name:   "case-insensitive keywords",
			speech: "Gave 750 TO Anil FOR rent Change Returned 250",
			want: handover.Parsed{
				AmountGiven:    750,
				ChangeReturned: 250,
				NetAmount:      500,
				GivenTo:        "Anil",
				Reason:         "rent",
			},
		},
		{
			name:   "no numbers at all",
			speech: "gave money to kumar",
			want: handover.Parsed{
				AmountGiven: 0,
				NetAmount:   0,
				GivenTo:     "kumar",
				Reason:      "other",
			},
		},
		{
			name:   "multi-word recipient",
			speech: "gave 100 to ram kumar for tea",
			want: handover.Parsed{
				AmountGiven: 100,
				NetAmount:   100,
				GivenTo:     "ram kumar",
				Reason:      "tea",
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := handover.Parse(tc.speech)
			tc.want.RawSpeech = tc.speech
			assert.Equal(t, tc.want, got)
		})
	}
}

func newService(t *testing.T) *handover.Service {
	t.Helper()
	svc, err := handover.NewService(handover.NewMemoryStore())
	require.NoError(t, err)
	return svc
}

func TestCreateFromRawSpeech(t *testing.T) {
	svc := newService(t)

	rec, err := svc.Create(context.Background(), handover.Parsed{
		RawSpeech: "gave 500 to ramesh for milk change returned 50",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, int64(450), rec.NetAmount)
	assert.Equal(t, "ramesh", rec.GivenTo)
}

func TestCreateRecomputesNet(t *testing.T) {
	svc := newService(t)

	rec, err := svc.Create(context.Background(), handover.Parsed{
		AmountGiven:    500,
		ChangeReturned: 100,
		NetAmount:      999999, // client-sent value must be ignored
		GivenTo:        "anil",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(400), rec.NetAmount)
	assert.Equal(t, "other", rec.Reason)
}

func TestCreateEmptyHandover(t *testing.T) {
	svc := newService(t)

	_, err := svc.Create(context.Background(), handover.Parsed{})
	assert.ErrorIs(t, err, handover.ErrInvalidInput)
}

func TestListNewestFirstAndDelete(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, handover.Parsed{RawSpeech: "gave 100 to a"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, handover.Parsed{RawSpeech: "gave 200 to b"})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	require.NoError(t, svc.Delete(ctx, first.ID))
	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	assert.ErrorIs(t, svc.Delete(ctx, first.ID), handover.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "  "), handover.ErrInvalidInput)
}
