// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qazpress/qazpress/internal/store"
)

func TestIssueLifecycle(t *testing.T) {
	svc := NewIssueService(store.New(testDB(t)), testLogger())
	ctx := context.Background()

	issue, err := svc.CreateIssue(ctx, CreateIssueInput{
		IssueNumber: 12, Year: 2026, Month: 8,
		TitleKz: "Тамыз саны", TitleRu: "Августовский номер",
		PageCount: 32,
	})
	require.NoError(t, err)

	_, err = svc.CreateIssue(ctx, CreateIssueInput{
		IssueNumber: 12, Year: 2026, Month: 8, TitleKz: "Көшірме",
	})
	assert.ErrorIs(t, err, ErrDuplicateIssue)

	got, err := svc.GetIssue(ctx, issue.ID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Views)

	issues, total, err := svc.ListIssues(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, issues, 1)
	assert.Equal(t, int64(1), total)

	require.NoError(t, svc.DeleteIssue(ctx, issue.ID))
	_, err = svc.GetIssue(ctx, issue.ID, false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIssueValidation(t *testing.T) {
	svc := NewIssueService(store.New(testDB(t)), testLogger())
	ctx := context.Background()

	_, err := svc.CreateIssue(ctx, CreateIssueInput{IssueNumber: 1, Year: 2026, Month: 13, TitleKz: "Сан"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateIssue(ctx, CreateIssueInput{IssueNumber: 1, Year: 2026, Month: 5})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecordDownload(t *testing.T) {
	db := testDB(t)
	q := store.New(db)
	svc := NewIssueService(q, testLogger())
	media := NewMediaService(q, testLogger())
	ctx := context.Background()

	m, err := media.RegisterMedia(ctx, RegisterMediaInput{
		Filename: "qazan-2026.pdf", MimeType: "application/pdf", Size: 1024, UploadedBy: 1,
	})
	require.NoError(t, err)

	issue, err := svc.CreateIssue(ctx, CreateIssueInput{
		IssueNumber: 3, Year: 2026, Month: 10, TitleKz: "Қазан саны", PDFMediaID: m.ID,
	})
	require.NoError(t, err)

	ref, err := svc.RecordDownload(ctx, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, ref.String)

	got, err := svc.GetIssue(ctx, issue.ID, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Downloads)
}

func TestRecordDownloadWithoutPDF(t *testing.T) {
	svc := NewIssueService(store.New(testDB(t)), testLogger())
	ctx := context.Background()

	issue, err := svc.CreateIssue(ctx, CreateIssueInput{
		IssueNumber: 4, Year: 2026, Month: 11, TitleKz: "Қараша саны",
	})
	require.NoError(t, err)

	_, err = svc.RecordDownload(ctx, issue.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegisterMedia(t *testing.T) {
	svc := NewMediaService(store.New(testDB(t)), testLogger())
	ctx := context.Background()

	m, err := svc.RegisterMedia(ctx, RegisterMediaInput{
		Filename: "Сурет от редакции.jpg", MimeType: "image/jpeg", Size: 2048, UploadedBy: 2,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Contains(t, m.StoredName, m.ID)
	assert.Regexp(t, `^[a-z0-9._-]+$`, m.StoredName, "stored names are ASCII-safe")
	assert.Contains(t, m.StoredName, ".jpg")

	_, err = svc.RegisterMedia(ctx, RegisterMediaInput{
		Filename: "x.exe", MimeType: "application/octet-stream", Size: 10, UploadedBy: 2,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
