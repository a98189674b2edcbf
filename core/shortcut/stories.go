package shortcut

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/opensdd/osdd-shortcut/core/normalize"
	"google.golang.org/protobuf/encoding/protojson"
)

const searchMaxPageSize = 25

func storyPath(id int64) string {
	return "/stories/" + strconv.FormatInt(id, 10)
}

func (c *Client) GetStory(ctx context.Context, id int64) (*Story, error) {
	var s Story
	if err := c.do(ctx, http.MethodGet, storyPath(id), nil, &s); err != nil {
		return nil, fmt.Errorf("failed to get story %d: %w", id, err)
	}
	return &s, nil
}

func (c *Client) CreateStory(ctx context.Context, in StoryCreate) (*Story, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("story name cannot be empty")
	}
	var s Story
	if err := c.do(ctx, http.MethodPost, "/stories", in, &s); err != nil {
		return nil, fmt.Errorf("failed to create story: %w", err)
	}
	return &s, nil
}

func (c *Client) UpdateStory(ctx context.Context, id int64, in StoryUpdate) (*Story, error) {
	var s Story
	if err := c.do(ctx, http.MethodPut, storyPath(id), in, &s); err != nil {
		return nil, fmt.Errorf("failed to update story %d: %w", id, err)
	}
	return &s, nil
}

func (c *Client) CreateComment(ctx context.Context, storyID int64, text string) (*Comment, error) {
	if text == "" {
		return nil, fmt.Errorf("comment text cannot be empty")
	}
	var cm Comment
	body := map[string]string{"text": text}
	if err := c.do(ctx, http.MethodPost, storyPath(storyID)+"/comments", body, &cm); err != nil {
		return nil, fmt.Errorf("failed to comment on story %d: %w", storyID, err)
	}
	return &cm, nil
}

func (c *Client) CreateTask(ctx context.Context, storyID int64, description string) (*Task, error) {
	if description == "" {
		return nil, fmt.Errorf("task description cannot be empty")
	}
	var t Task
	body := map[string]string{"description": description}
	if err := c.do(ctx, http.MethodPost, storyPath(storyID)+"/tasks", body, &t); err != nil {
		return nil, fmt.Errorf("failed to add task to story %d: %w", storyID, err)
	}
	return &t, nil
}

func (c *Client) GetEpic(ctx context.Context, id int64) (*Epic, error) {
	var e Epic
	if err := c.do(ctx, http.MethodGet, "/epics/"+strconv.FormatInt(id, 10), nil, &e); err != nil {
		return nil, fmt.Errorf("failed to get epic %d: %w", id, err)
	}
	return &e, nil
}

// SearchStories runs a search query. The endpoint has answered both with a bare
// array and with {"data": [...]}, so the body goes through the normalizer before
// records are decoded. Records that do not decode as stories are skipped.
func (c *Client) SearchStories(ctx context.Context, query string, limit int) ([]Story, error) {
	if query == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}
	if limit <= 0 || limit > searchMaxPageSize {
		limit = searchMaxPageSize
	}
	q := url.Values{}
	q.Set("query", query)
	q.Set("page_size", strconv.Itoa(limit))

	raw, err := c.Call(ctx, http.MethodGet, "/search/stories?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to search stories: %w", err)
	}

	records := normalize.JSON(raw)
	stories := make([]Story, 0, len(records))
	for i, rec := range records {
		b, err := protojson.Marshal(rec)
		if err != nil {
			slog.Debug("Skipping search record", "index", i, "error", err)
			continue
		}
		var s Story
		if err := json.Unmarshal(b, &s); err != nil {
			slog.Debug("Skipping search record", "index", i, "error", err)
			continue
		}
		stories = append(stories, s)
		if len(stories) >= limit {
			break
		}
	}
	slog.Debug("Shortcut search finished", "query", query, "count", len(stories))
	return stories, nil
}
