package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/labjournal/labctl/internal/client/models"
)

// Experiments lists experiments, optionally filtered (status, priority,
// search, ordering).
func (c *Client) Experiments(ctx context.Context, filters url.Values) ([]models.Experiment, error) {
	var out []models.Experiment
	if err := c.do(ctx, http.MethodGet, "/api/experiments/", filters, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Experiment fetches a single experiment.
func (c *Client) Experiment(ctx context.Context, id int64) (*models.Experiment, error) {
	var out models.Experiment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/experiments/%d/", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateExperiment creates an experiment and returns the stored record.
func (c *Client) CreateExperiment(ctx context.Context, in models.NewExperiment) (*models.Experiment, error) {
	var out models.Experiment
	if err := c.do(ctx, http.MethodPost, "/api/experiments/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateExperiment patches an experiment.
func (c *Client) UpdateExperiment(ctx context.Context, id int64, patch models.ExperimentUpdate) (*models.Experiment, error) {
	var out models.Experiment
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/experiments/%d/", id), nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteExperiment removes an experiment and its sub-resources.
func (c *Client) DeleteExperiment(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/experiments/%d/", id), nil, nil, nil)
}

// Steps lists the steps of an experiment in step-number order.
func (c *Client) Steps(ctx context.Context, experimentID int64) ([]models.ExperimentStep, error) {
	var out []models.ExperimentStep
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/experiments/%d/steps/", experimentID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateStep appends a step to an experiment.
func (c *Client) CreateStep(ctx context.Context, experimentID int64, in models.NewStep) (*models.ExperimentStep, error) {
	var out models.ExperimentStep
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/experiments/%d/steps/", experimentID), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStep patches a single step.
func (c *Client) UpdateStep(ctx context.Context, experimentID, stepID int64, patch models.StepUpdate) (*models.ExperimentStep, error) {
	var out models.ExperimentStep
	path := fmt.Sprintf("/api/experiments/%d/steps/%d/", experimentID, stepID)
	if err := c.do(ctx, http.MethodPatch, path, nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteStep removes a single step without affecting its siblings.
func (c *Client) DeleteStep(ctx context.Context, experimentID, stepID int64) error {
	path := fmt.Sprintf("/api/experiments/%d/steps/%d/", experimentID, stepID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Comments lists the comments of an experiment.
func (c *Client) Comments(ctx context.Context, experimentID int64) ([]models.Comment, error) {
	var out []models.Comment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/experiments/%d/comments/", experimentID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateComment adds a comment to an experiment.
func (c *Client) CreateComment(ctx context.Context, experimentID int64, in models.NewComment) (*models.Comment, error) {
	var out models.Comment
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/experiments/%d/comments/", experimentID), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Attachments lists the attachments of an experiment.
func (c *Client) Attachments(ctx context.Context, experimentID int64) ([]models.Attachment, error) {
	var out []models.Attachment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/experiments/%d/attachments/", experimentID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadAttachment streams a file to an experiment as multipart form data.
func (c *Client) UploadAttachment(ctx context.Context, experimentID int64, filename, description string, file io.Reader) (*models.Attachment, error) {
	var out models.Attachment
	fields := map[string]string{}
	if description != "" {
		fields["description"] = description
	}
	path := fmt.Sprintf("/api/experiments/%d/attachments/", experimentID)
	if err := c.upload(ctx, path, fields, "file", filename, file, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAttachment removes a single attachment.
func (c *Client) DeleteAttachment(ctx context.Context, experimentID, attachmentID int64) error {
	path := fmt.Sprintf("/api/experiments/%d/attachments/%d/", experimentID, attachmentID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
