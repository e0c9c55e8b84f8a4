// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package argon

import (
	"github.com/ChainSafe/argon-client/lib/chain"
	"github.com/ChainSafe/argon-client/lib/common"
)

const notebookPallet = "Notebook"

// Notebook module errors.
const (
	NotebookErrorDuplicateNotebookNumber   = "DuplicateNotebookNumber"
	NotebookErrorMissingNotebookNumber     = "MissingNotebookNumber"
	NotebookErrorNotebookTickAlreadyUsed   = "NotebookTickAlreadyUsed"
	NotebookErrorInvalidNotebookSignature  = "InvalidNotebookSignature"
	NotebookErrorInvalidSecretProvided     = "InvalidSecretProvided"
	NotebookErrorCouldNotDecodeNotebook    = "CouldNotDecodeNotebook"
	NotebookErrorDuplicateNotebookDigest   = "DuplicateNotebookDigest"
	NotebookErrorMissingNotebookDigest     = "MissingNotebookDigest"
	NotebookErrorInvalidNotebookDigest     = "InvalidNotebookDigest"
	NotebookErrorMultipleNotebookInherents = "MultipleNotebookInherentsProvided"
	NotebookErrorInternalError             = "InternalError"
)

// SignedNotebookHeader is a notebook header with the notary signature.
// The header is kept encoded.
type SignedNotebookHeader struct {
	Header    []byte
	Signature [64]byte
}

// NotebookDetails are the last notebook details of a notary.
type NotebookDetails struct {
	NotebookNumber NotebookNumber
	Tick           Tick
}

// LastNotebookDetails is the last notebook of a notary with its
// audit state.
type LastNotebookDetails struct {
	Details        NotebookDetails
	AuditCompleted bool
}

// NotaryAuditFailure locks a notary after a failed notebook audit.
type NotaryAuditFailure struct {
	NotebookNumber NotebookNumber
	Tick           Tick
	Block          BlockNumber
}

// NotebookSubmission is a notebook included in a block.
type NotebookSubmission struct {
	NotaryID          NotaryID
	NotebookNumber    NotebookNumber
	AuditFirstFailure *uint8
}

type notebookEvent struct{}

func (notebookEvent) PalletName() string { return notebookPallet }

// NotebookSubmitted is emitted for every notebook included in a block.
type NotebookSubmitted struct {
	notebookEvent
	NotaryID       NotaryID
	NotebookNumber NotebookNumber
}

func (NotebookSubmitted) EventName() string { return "NotebookSubmitted" }

type NotebookAuditFailure struct {
	notebookEvent
	NotaryID           NotaryID
	NotebookNumber     NotebookNumber
	FirstFailureReason uint8
}

func (NotebookAuditFailure) EventName() string { return "NotebookAuditFailure" }

func registerNotebookEvents(r *chain.EventRegistry) {
	r.Register("NotebookSubmitted(notary_id:u32,notebook_number:u32)",
		func() chain.Event { return &NotebookSubmitted{} })
	r.Register("NotebookAuditFailure(notary_id:u32,notebook_number:u32,first_failure_reason:VerifyError)",
		func() chain.Event { return &NotebookAuditFailure{} })
}

// NotebookTx builds Notebook calls.
type NotebookTx struct{}

// Submit includes the signed notebook headers in the block. It is an
// inherent.
func (NotebookTx) Submit(notebooks []SignedNotebookHeader) *chain.Payload {
	return chain.NewPayload(notebookPallet, "submit", struct{ Notebooks []SignedNotebookHeader }{notebooks},
		"submit(notebooks:Vec<SignedNotebookHeader>)")
}

// NotebookStorage addresses Notebook storage.
type NotebookStorage struct{}

// LastNotebookDetailsByNotary are the recent notebooks of the notary.
func (NotebookStorage) LastNotebookDetailsByNotary(notary NotaryID) *chain.StorageAddress[[]LastNotebookDetails] {
	return chain.NewStorageAddress[[]LastNotebookDetails](notebookPallet, "LastNotebookDetailsByNotary",
		twox64Concat, "LastNotebookDetailsByNotary[Twox64Concat(u32)]->BoundedVec<(NotaryNotebookKeyDetails,bool)>",
		notary)
}

func (NotebookStorage) LastNotebookDetailsByNotaryIter() *chain.StorageAddress[[]LastNotebookDetails] {
	return chain.NewStorageAddress[[]LastNotebookDetails](notebookPallet, "LastNotebookDetailsByNotary",
		twox64Concat, "LastNotebookDetailsByNotary[Twox64Concat(u32)]->BoundedVec<(NotaryNotebookKeyDetails,bool)>")
}

// NotariesLockedForFailedAudit are the notaries whose notebooks are
// refused until the failure is resolved.
func (NotebookStorage) NotariesLockedForFailedAudit(notary NotaryID) *chain.StorageAddress[NotaryAuditFailure] {
	return chain.NewStorageAddress[NotaryAuditFailure](notebookPallet, "NotariesLockedForFailedAudit",
		twox64Concat, "NotariesLockedForFailedAudit[Twox64Concat(u32)]->(u32,u64,u32)", notary)
}

func (NotebookStorage) NotariesLockedForFailedAuditIter() *chain.StorageAddress[NotaryAuditFailure] {
	return chain.NewStorageAddress[NotaryAuditFailure](notebookPallet, "NotariesLockedForFailedAudit",
		twox64Concat, "NotariesLockedForFailedAudit[Twox64Concat(u32)]->(u32,u64,u32)")
}

// BlockNotebooks are the notebooks included in the current block.
func (NotebookStorage) BlockNotebooks() *chain.StorageAddress[[]NotebookSubmission] {
	return chain.NewStorageAddress[[]NotebookSubmission](notebookPallet, "BlockNotebooks", nil,
		"BlockNotebooks[]->BoundedVec<NotebookAuditResult>")
}

// NotebookChangedAccountsRootByNotary is the account changes root of
// the notebook of the notary.
func (NotebookStorage) NotebookChangedAccountsRootByNotary(notary NotaryID,
	notebook NotebookNumber) *chain.StorageAddress[common.Hash] {
	return chain.NewStorageAddress[common.Hash](notebookPallet, "NotebookChangedAccountsRootByNotary",
		twox64Twox64, "NotebookChangedAccountsRootByNotary[Twox64Concat(u32),Twox64Concat(u32)]->H256",
		notary, notebook)
}

func (NotebookStorage) NotebookChangedAccountsRootByNotaryIter() *chain.StorageAddress[common.Hash] {
	return chain.NewStorageAddress[common.Hash](notebookPallet, "NotebookChangedAccountsRootByNotary",
		twox64Twox64, "NotebookChangedAccountsRootByNotary[Twox64Concat(u32),Twox64Concat(u32)]->H256")
}

func notebookBindings() []chain.Binding {
	storage := NotebookStorage{}
	return []chain.Binding{
		NotebookTx{}.Submit(nil),
		storage.LastNotebookDetailsByNotaryIter(),
		storage.NotariesLockedForFailedAuditIter(),
		storage.BlockNotebooks(),
		storage.NotebookChangedAccountsRootByNotaryIter(),
	}
}
