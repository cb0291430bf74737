package domain

import "github.com/yungbote/ledger-backend/internal/domain/ledger"

type (
	Profile        = ledger.Profile
	ProfileType    = ledger.ProfileType
	Contract       = ledger.Contract
	ContractStatus = ledger.ContractStatus
	Job            = ledger.Job
	LedgerEntry    = ledger.LedgerEntry
	EntryKind      = ledger.EntryKind
	Window         = ledger.Window
)

const (
	ProfileTypeClient     = ledger.ProfileTypeClient
	ProfileTypeContractor = ledger.ProfileTypeContractor

	ContractStatusNew        = ledger.ContractStatusNew
	ContractStatusInProgress = ledger.ContractStatusInProgress
	ContractStatusTerminated = ledger.ContractStatusTerminated

	EntryKindPaymentDebit  = ledger.EntryKindPaymentDebit
	EntryKindPaymentCredit = ledger.EntryKindPaymentCredit
	EntryKindDeposit       = ledger.EntryKindDeposit
)
