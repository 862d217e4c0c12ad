package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/wisepick/internal/apperr"
	"github.com/user/wisepick/internal/model"
)

// fakeMovieResolver 电影目录替身：未配置的片名按硬失败处理
type fakeMovieResolver struct {
	movies map[string]model.Movie
	calls  int
}

func (f *fakeMovieResolver) SearchMovie(ctx context.Context, title string) (*model.Movie, error) {
	f.calls++
	movie, ok := f.movies[title]
	if !ok {
		return nil, apperr.External("TMDB", "No movie found for title: "+title)
	}
	return &movie, nil
}

// fakeTrailerFinder 预告片替身
type fakeTrailerFinder struct {
	urls  map[string]string
	calls int
}

func (f *fakeTrailerFinder) GetTrailerURL(ctx context.Context, title string) string {
	f.calls++
	if url, ok := f.urls[title]; ok {
		return url
	}
	return TrailerNotFound
}

func TestMovieSuggestOne(t *testing.T) {
	llm := &fakeSuggester{movieTitle: "Arrival"}
	resolver := &fakeMovieResolver{movies: map[string]model.Movie{
		"Arrival": {Title: "Arrival", Overview: "Aliens arrive."},
	}}
	trailer := &fakeTrailerFinder{urls: map[string]string{
		"Arrival": "https://www.youtube.com/watch?v=abc",
	}}

	svc := NewMovieService(llm, resolver, trailer)
	movie, err := svc.SuggestOne(context.Background(), "a movie about language")

	require.NoError(t, err)
	assert.Equal(t, "Arrival", movie.Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc", movie.TrailerURL)
}

func TestMovieSuggestOneCatalogFailurePropagates(t *testing.T) {
	llm := &fakeSuggester{movieTitle: "No Such Movie"}
	svc := NewMovieService(llm, &fakeMovieResolver{}, &fakeTrailerFinder{})

	_, err := svc.SuggestOne(context.Background(), "anything nice")

	// 目录零结果在电影侧是 ExternalAPIError，原样传出，不改写为 NotFound
	require.Error(t, err)
	assert.Equal(t, apperr.KindExternalAPI, apperr.KindOf(err))
}

func TestMovieSuggestOneTrailerMissingIsNotFatal(t *testing.T) {
	llm := &fakeSuggester{movieTitle: "Arrival"}
	resolver := &fakeMovieResolver{movies: map[string]model.Movie{"Arrival": {Title: "Arrival"}}}

	svc := NewMovieService(llm, resolver, &fakeTrailerFinder{})
	movie, err := svc.SuggestOne(context.Background(), "a movie about language")

	require.NoError(t, err)
	assert.Equal(t, TrailerNotFound, movie.TrailerURL)
}

func TestMovieSuggestManyRenumbersSurvivors(t *testing.T) {
	llm := &fakeSuggester{movieTitles: []string{"First", "Missing", "Third"}}
	resolver := &fakeMovieResolver{movies: map[string]model.Movie{
		"First": {Title: "First"},
		"Third": {Title: "Third"},
	}}

	svc := NewMovieService(llm, resolver, &fakeTrailerFinder{})
	movies, err := svc.SuggestMany(context.Background(), "three movies please")

	require.NoError(t, err)
	require.Len(t, movies, 2)
	// 序号对存活结果重排，而不是保留原位置 1 和 3
	assert.Equal(t, 1, movies[0].ID)
	assert.Equal(t, "First", movies[0].Title)
	assert.Equal(t, 2, movies[1].ID)
	assert.Equal(t, "Third", movies[1].Title)
}

func TestMovieSuggestManyEmptySuggestions(t *testing.T) {
	llm := &fakeSuggester{movieTitles: []string{}}
	svc := NewMovieService(llm, &fakeMovieResolver{}, &fakeTrailerFinder{})

	_, err := svc.SuggestMany(context.Background(), "gibberish query")

	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestMovieSuggestManyAllTitlesFail(t *testing.T) {
	llm := &fakeSuggester{movieTitles: []string{"X", "Y"}}
	svc := NewMovieService(llm, &fakeMovieResolver{}, &fakeTrailerFinder{})

	_, err := svc.SuggestMany(context.Background(), "made up titles")

	// 全部落空才升级为 NotFound
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestMovieSuggestManySuggesterErrorPropagates(t *testing.T) {
	llm := &fakeSuggester{err: apperr.RateLimited("slow down")}
	svc := NewMovieService(llm, &fakeMovieResolver{}, &fakeTrailerFinder{})

	_, err := svc.SuggestMany(context.Background(), "anything nice")

	require.Error(t, err)
	assert.Equal(t, apperr.KindRateLimited, apperr.KindOf(err))
}
