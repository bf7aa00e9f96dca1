package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	domainerrors "homeserve.backend/internal/domain/errors"
)

// VerificationStatus represents the aggregate approval state of a provider's
// submitted documents. The literal strings are part of the wire format.
type VerificationStatus string

const (
	VerificationStatusUnsubmitted VerificationStatus = "unsubmitted"
	VerificationStatusPending     VerificationStatus = "pending"
	VerificationStatusVerified    VerificationStatus = "verified"
	VerificationStatusRejected    VerificationStatus = "rejected"
)

// verificationTransitions is the legal state graph. Verified is terminal for
// the normal flow; the only escape is an explicit administrative override,
// which is not part of this workflow.
var verificationTransitions = map[VerificationStatus][]VerificationStatus{
	VerificationStatusUnsubmitted: {VerificationStatusPending},
	VerificationStatusPending:     {VerificationStatusVerified, VerificationStatusRejected},
	VerificationStatusRejected:    {VerificationStatusPending},
	VerificationStatusVerified:    {},
}

// Provider is the aggregate root for verification. Documents and History are
// exclusively owned; the aggregate is never deleted.
type Provider struct {
	ID          uuid.UUID                        `json:"id"`
	UserID      uuid.UUID                        `json:"userId"`
	Status      VerificationStatus               `json:"verificationStatus"`
	IsActive    bool                             `json:"isActive"`
	StatusNotes null.String                      `json:"statusNotes,omitempty"`
	Documents   map[DocumentType]*DocumentBundle `json:"documents"`
	History     *AuditTrail                      `json:"-"`
	CreatedAt   time.Time                        `json:"createdAt"`
	UpdatedAt   time.Time                        `json:"updatedAt"`
}

// NewProvider creates an unsubmitted, active provider aggregate
func NewProvider(userID uuid.UUID, now time.Time) *Provider {
	return &Provider{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    VerificationStatusUnsubmitted,
		IsActive:  true,
		Documents: make(map[DocumentType]*DocumentBundle),
		History:   NewAuditTrail(nil),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsVerified is derived from the status; it is never stored independently.
func (p *Provider) IsVerified() bool {
	return p.Status == VerificationStatusVerified
}

// Ownership returns the owning parties for permission checks. Providers are
// identified by their user account id throughout.
func (p *Provider) Ownership() Ownership {
	return Ownership{ProviderID: p.UserID}
}

// CanTransition reports whether the status graph allows moving to next
func (p *Provider) CanTransition(next VerificationStatus) bool {
	for _, s := range verificationTransitions[p.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// transition moves the aggregate to next and appends the matching audit
// entry. The entry's status is forced to the new status so the trail can
// never disagree with the aggregate.
func (p *Provider) transition(next VerificationStatus, entry AuditEntry) error {
	if !p.CanTransition(next) {
		return domainerrors.ErrInvalidState
	}
	entry.Status = string(next)
	if err := p.History.Append(entry); err != nil {
		return err
	}
	p.Status = next
	p.UpdatedAt = entry.Date
	return nil
}

// HasSubmittedDocuments reports whether at least one bundle contains a file
func (p *Provider) HasSubmittedDocuments() bool {
	for _, bundle := range p.Documents {
		if bundle != nil && len(bundle.Files) > 0 {
			return true
		}
	}
	return false
}

// bundle returns the bundle for a document type, creating it on first use
func (p *Provider) bundle(docType DocumentType) *DocumentBundle {
	if p.Documents == nil {
		p.Documents = make(map[DocumentType]*DocumentBundle)
	}
	b, ok := p.Documents[docType]
	if !ok {
		b = &DocumentBundle{}
		p.Documents[docType] = b
	}
	return b
}

// CanAddDocument checks an upload against the workflow state and the
// document type limits without mutating anything.
func (p *Provider) CanAddDocument(docType DocumentType, size int64, mimeType string) error {
	if !docType.Valid() {
		return domainerrors.ErrValidation
	}
	if p.Status == VerificationStatusPending {
		return domainerrors.ErrInvalidState
	}
	bundle := p.Documents[docType]
	if bundle == nil {
		bundle = &DocumentBundle{}
	}
	return bundle.CanAdd(size, mimeType, ConfigFor(docType))
}

// AddDocument validates and stores an uploaded file in the bundle for
// docType. Uploads are not allowed mid-review.
func (p *Provider) AddDocument(docType DocumentType, file FileRecord, now time.Time) (FileRecord, error) {
	if !docType.Valid() {
		return FileRecord{}, domainerrors.ErrValidation
	}
	if p.Status == VerificationStatusPending {
		return FileRecord{}, domainerrors.ErrInvalidState
	}
	added, err := p.bundle(docType).AddFile(file, ConfigFor(docType))
	if err != nil {
		return FileRecord{}, err
	}
	p.UpdatedAt = now
	return added, nil
}

// DeleteDocument removes a file by id. A provider may not tamper with
// documents while a review is pending.
func (p *Provider) DeleteDocument(docType DocumentType, fileID uuid.UUID, now time.Time) (FileRecord, error) {
	if !docType.Valid() {
		return FileRecord{}, domainerrors.ErrValidation
	}
	if p.Status == VerificationStatusPending {
		return FileRecord{}, domainerrors.ErrInvalidState
	}
	bundle, ok := p.Documents[docType]
	if !ok {
		return FileRecord{}, domainerrors.ErrNotFound
	}
	removed, err := bundle.RemoveFile(fileID)
	if err != nil {
		return FileRecord{}, err
	}
	p.UpdatedAt = now
	return removed, nil
}

// SubmitForReview moves the aggregate to pending. Legal from unsubmitted and
// rejected only, and only when at least one document has been uploaded. The
// audit entry is system-generated (no reviewer).
func (p *Provider) SubmitForReview(now time.Time) error {
	if p.Status != VerificationStatusUnsubmitted && p.Status != VerificationStatusRejected {
		return domainerrors.ErrInvalidState
	}
	if !p.HasSubmittedDocuments() {
		return domainerrors.ErrNoDocumentsSubmitted
	}
	return p.transition(VerificationStatusPending, AuditEntry{
		Date:  now,
		Notes: null.StringFrom("Documents submitted for verification"),
	})
}

// Review applies an administrative decision. Legal from pending only.
// Rejection requires non-empty notes; approval notes are optional.
// Per-document review results are applied to the bundles' summary flags.
// Resubmission after rejection intentionally keeps earlier per-document
// flags until the next review overwrites them.
func (p *Provider) Review(reviewer string, approved bool, notes string, perDocument map[DocumentType]bool, now time.Time) error {
	if p.Status != VerificationStatusPending {
		return domainerrors.ErrInvalidState
	}
	notes = strings.TrimSpace(notes)
	if !approved && notes == "" {
		return domainerrors.ErrValidation
	}

	next := VerificationStatusRejected
	if approved {
		next = VerificationStatusVerified
	}

	entry := AuditEntry{Date: now, Reviewer: null.StringFrom(reviewer)}
	if notes != "" {
		entry.Notes.SetValid(notes)
	}
	if err := p.transition(next, entry); err != nil {
		return err
	}

	for docType, verified := range perDocument {
		if !docType.Valid() {
			continue
		}
		p.bundle(docType).MarkReviewed(verified, "")
	}
	return nil
}

// SetActive flips the independent admin-controlled lifecycle flag. It is not
// part of the verification state machine and never touches the verification
// history.
func (p *Provider) SetActive(active bool, notes string, now time.Time) {
	p.IsActive = active
	if notes != "" {
		p.StatusNotes.SetValid(notes)
	} else {
		p.StatusNotes = null.String{}
	}
	p.UpdatedAt = now
}

// DocumentReviewInput carries the per-document verdict of a review
type DocumentReviewInput struct {
	Verified bool `json:"verified"`
}

// ReviewProviderInput represents input for an administrative review decision
type ReviewProviderInput struct {
	ProviderID     string                               `json:"providerId" binding:"required"`
	Approved       bool                                 `json:"approved"`
	Notes          string                               `json:"notes"`
	DocumentReview map[DocumentType]DocumentReviewInput `json:"documentReview"`
}

// ProviderStatusInput represents input for enabling/disabling a provider
type ProviderStatusInput struct {
	IsActive bool   `json:"isActive"`
	Notes    string `json:"notes"`
}

// VerificationStatusResponse is the entity view returned by verification
// operations
type VerificationStatusResponse struct {
	ProviderID uuid.UUID                        `json:"providerId"`
	Status     VerificationStatus               `json:"verificationStatus"`
	IsVerified bool                             `json:"isVerified"`
	IsActive   bool                             `json:"isActive"`
	Documents  map[DocumentType]*DocumentBundle `json:"documents"`
	History    []AuditEntry                     `json:"history"`
}
