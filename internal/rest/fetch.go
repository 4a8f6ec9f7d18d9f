package rest

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/rios0rios0/gitmeta/domain"
)

// FetchAll walks a paginated listing endpoint from startURL to exhaustion and
// returns the extracted records as one flat slice. itemsPath names the array
// field inside the response envelope ("value", "values"); an empty itemsPath
// means the response body is the array itself.
//
// Ordering is deterministic for a stable remote: page-fetch order first, then
// within-page order. The aggregate is all-or-nothing — any page failure or
// malformed cursor discards what was accumulated so callers never observe a
// silently truncated listing.
func FetchAll[T any](
	ctx context.Context,
	client *Client,
	startURL string,
	pager Pager,
	itemsPath string,
	extract func(record gjson.Result) (T, error),
) ([]T, error) {
	var all []T

	pageURL := startURL
	for page := 1; pageURL != ""; page++ {
		resp, err := client.Get(ctx, pageURL)
		if err != nil {
			return nil, err
		}

		items, err := pageItems(resp, itemsPath)
		if err != nil {
			return nil, err
		}

		for _, record := range items {
			value, extractErr := extract(record)
			if extractErr != nil {
				return nil, extractErr
			}
			all = append(all, value)
		}

		logger.Debugf("fetched page %d of %s (%d items)", page, startURL, len(items))

		pageURL, err = pager.Next(resp)
		if err != nil {
			return nil, err
		}
	}

	return all, nil
}

func pageItems(resp *Response, itemsPath string) ([]gjson.Result, error) {
	body := gjson.ParseBytes(resp.Body)
	items := body
	if itemsPath != "" {
		items = body.Get(itemsPath)
	}
	if !items.IsArray() {
		return nil, &domain.PaginationError{
			URL:    resp.URL,
			Reason: "page has no items array at " + describeItemsPath(itemsPath),
		}
	}
	return items.Array(), nil
}

func describeItemsPath(itemsPath string) string {
	if itemsPath == "" {
		return "the top level"
	}
	return "field " + itemsPath
}
