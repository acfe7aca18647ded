package reminder

import (
	"context"
	"errors"

	"github.com/pathakanu/linkLater/internal/linkpreview"
	myopenai "github.com/pathakanu/linkLater/internal/openai"
)

var errNoLink = errors.New("text contains no link")

// TitlerFunc adapts a function to Titler.
type TitlerFunc func(ctx context.Context, text string) (string, error)

func (f TitlerFunc) Title(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// LinkTitler uses the page title of the link inside the reminder text.
func LinkTitler(fetcher *linkpreview.Fetcher) Titler {
	return TitlerFunc(func(ctx context.Context, text string) (string, error) {
		link := linkpreview.LinkFor(text)
		if link == "" {
			return "", errNoLink
		}
		return fetcher.Title(ctx, link)
	})
}

// OpenAITitler asks the model for a short title.
func OpenAITitler(client *myopenai.Client) Titler {
	return TitlerFunc(client.ShortTitle)
}

// FirstTitle tries each titler in order and returns the first non-empty title.
type FirstTitle []Titler

func (f FirstTitle) Title(ctx context.Context, text string) (string, error) {
	var errs []error
	for _, t := range f {
		title, err := t.Title(ctx, text)
		if err == nil && title != "" {
			return title, nil
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return "", errors.New("no title available")
	}
	return "", errors.Join(errs...)
}
