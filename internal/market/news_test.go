package market

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewsFeed(t *testing.T) {
	items := []NewsItem{{ID: "1", Title: "Headline", Sentiment: "neutral"}}
	q := NewsQuery{Symbol: "BTC", Name: "Bitcoin"}

	t.Run("CachesWithinTTL", func(t *testing.T) {
		// Arrange
		src := new(MockNewsSource)
		src.On("News", mock.Anything, q).Return(items, nil).Once()
		feed := NewNewsFeed(src, 5*time.Minute, zap.NewNop())

		// Act
		first, err1 := feed.News(context.Background(), NewsQuery{Symbol: "btc", Name: "Bitcoin"})
		second, err2 := feed.News(context.Background(), q)

		// Assert
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, items, first)
		assert.Equal(t, items, second)
		src.AssertNumberOfCalls(t, "News", 1)
	})

	t.Run("RefetchesAfterTTL", func(t *testing.T) {
		now := time.Now()
		src := new(MockNewsSource)
		src.On("News", mock.Anything, q).Return(items, nil).Twice()
		feed := NewNewsFeed(src, time.Minute, zap.NewNop())
		feed.now = func() time.Time { return now }

		_, _ = feed.News(context.Background(), q)
		now = now.Add(2 * time.Minute)
		_, err := feed.News(context.Background(), q)

		require.NoError(t, err)
		src.AssertNumberOfCalls(t, "News", 2)
	})

	t.Run("ServesExpiredEntryOnFailure", func(t *testing.T) {
		now := time.Now()
		src := new(MockNewsSource)
		src.On("News", mock.Anything, q).Return(items, nil).Once()
		src.On("News", mock.Anything, q).Return(nil, errors.New("rate limited")).Once()
		feed := NewNewsFeed(src, time.Minute, zap.NewNop())
		feed.now = func() time.Time { return now }

		_, _ = feed.News(context.Background(), q)
		now = now.Add(time.Hour)
		got, err := feed.News(context.Background(), q)

		require.NoError(t, err)
		assert.Equal(t, items, got)
	})

	t.Run("ErrorWithoutCache", func(t *testing.T) {
		src := new(MockNewsSource)
		src.On("News", mock.Anything, q).Return(nil, errors.New("boom"))
		feed := NewNewsFeed(src, time.Minute, zap.NewNop())

		_, err := feed.News(context.Background(), q)
		assert.Error(t, err)

		_, err = feed.News(context.Background(), NewsQuery{})
		assert.ErrorIs(t, err, ErrNoSymbols)
	})
}
