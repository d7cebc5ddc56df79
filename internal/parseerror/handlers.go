package parseerror

import (
	"github.com/tansive/walleterrors/internal/common/apperrors"
)

// Validation error domains reported by the backend.
const (
	DomainAccount      = "account"
	DomainOrganization = "organization"
	DomainStorage      = "storage"
	DomainContact      = "contact"
	DomainProposal     = "proposal"
)

type builtinMessage struct {
	domain string
	name   string
	msg    string
}

var builtinMessages = []builtinMessage{
	{DomainAccount, "emailAlreadyRegistered", "The email address you entered is already in use."},
	{DomainAccount, "invalidEmail", "The email address you entered is not valid."},
	{DomainAccount, "emailNotVerified", "Please verify your email address before continuing."},
	{DomainAccount, "invalidVerificationCode", "The verification code you entered is incorrect."},
	{DomainAccount, "verificationCodeExpired", "Your verification code has expired. Please request a new one."},
	{DomainAccount, "tooManyVerificationAttempts", "Too many verification attempts. Please try again later."},
	{DomainAccount, "walletAlreadyLinked", "This wallet is already linked to another account."},
	{DomainAccount, "invalidSignature", "The signature could not be verified. Please sign the message again."},

	{DomainOrganization, "nameAlreadyTaken", "An organization with this name already exists."},
	{DomainOrganization, "memberAlreadyExists", "This user is already a member of the organization."},
	{DomainOrganization, "invitationExpired", "This invitation has expired. Please ask for a new one."},
	{DomainOrganization, "insufficientPermissions", "You do not have permission to perform this action."},
	{DomainOrganization, "lastAdmin", "An organization must have at least one admin."},

	{DomainStorage, "valueTooLarge", "The data you are trying to save is too large."},
	{DomainStorage, "quotaExceeded", "You have reached your storage limit."},
	{DomainStorage, "keyNotFound", "The item you are looking for no longer exists."},

	{DomainContact, "addressAlreadyExists", "A contact with this address already exists."},
	{DomainContact, "nameAlreadyExists", "A contact with this name already exists."},
	{DomainContact, "invalidAddress", "The address you entered is not valid for the selected network."},
	{DomainContact, "contactNotFound", "This contact no longer exists."},

	{DomainProposal, "alreadySigned", "You have already signed this proposal."},
	{DomainProposal, "alreadyExecuted", "This proposal has already been executed."},
	{DomainProposal, "expired", "This proposal has expired."},
	{DomainProposal, "notASigner", "You are not a signer on this Safe."},
	{DomainProposal, "thresholdNotMet", "This proposal does not have enough signatures yet."},
	{DomainProposal, "invalidNonce", "The proposal nonce is out of date. Please refresh and try again."},
}

func registerBuiltins(r *Registry) {
	for _, b := range builtinMessages {
		r.RegisterMessage(apperrors.ValidationKey(b.domain, b.name), b.msg)
	}
}
