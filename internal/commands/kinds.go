package commands

import (
	"errors"
	"net/http"

	"github.com/emilythestrangee/reddit-lite/internal/store"
)

// ErrNotLoggedIn is returned by commands that need an active user.
var ErrNotLoggedIn = errors.New("please log in first")

// Kind classifies a command outcome for presentation layers.
type Kind int

const (
	OK Kind = iota
	Internal
	DuplicateUser
	DuplicateCommunity
	DuplicateTitle
	UnknownCommunity
	UserNotFound
	PostNotFound
	AlreadyUpvoted
	NotLoggedIn
	InvalidInput
)

var kindNames = map[Kind]string{
	OK:                 "OK",
	Internal:           "Internal",
	DuplicateUser:      "DuplicateUser",
	DuplicateCommunity: "DuplicateCommunity",
	DuplicateTitle:     "DuplicateTitle",
	UnknownCommunity:   "UnknownCommunity",
	UserNotFound:       "UserNotFound",
	PostNotFound:       "PostNotFound",
	AlreadyUpvoted:     "AlreadyUpvoted",
	NotLoggedIn:        "NotLoggedIn",
	InvalidInput:       "InvalidInput",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

var sentinels = []struct {
	err  error
	kind Kind
}{
	{store.ErrDuplicateUser, DuplicateUser},
	{store.ErrDuplicateCommunity, DuplicateCommunity},
	{store.ErrDuplicateTitle, DuplicateTitle},
	{store.ErrUnknownCommunity, UnknownCommunity},
	{store.ErrUserNotFound, UserNotFound},
	{store.ErrPostNotFound, PostNotFound},
	{store.ErrAlreadyUpvoted, AlreadyUpvoted},
	{ErrNotLoggedIn, NotLoggedIn},
	{store.ErrInvalidInput, InvalidInput},
}

// KindOf maps err onto its failure kind. nil is OK; anything unrecognised
// is Internal.
func KindOf(err error) Kind {
	if err == nil {
		return OK
	}
	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			return s.kind
		}
	}
	return Internal
}

// ExitCode is the process exit status reported for the kind.
func (k Kind) ExitCode() int {
	switch k {
	case OK:
		return 0
	case Internal:
		return 1
	default:
		return 10 + int(k-DuplicateUser)
	}
}

func (k Kind) HTTPStatus() int {
	switch k {
	case OK:
		return http.StatusOK
	case DuplicateUser, DuplicateCommunity, DuplicateTitle, AlreadyUpvoted:
		return http.StatusConflict
	case UnknownCommunity, UserNotFound, PostNotFound:
		return http.StatusNotFound
	case NotLoggedIn:
		return http.StatusUnauthorized
	case InvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
