package suggest

import (
	"errors"
	"log"
	"time"
)

// ScranInserter is the slice of the repository the wizard needs for its
// commit step.
type ScranInserter interface {
	InsertScran(imageRef, name string, description *string, price float64, submitterID string) (int64, error)
}

// Input is one inbound wizard event, already stripped of transport
// detail. PhotoRef carries the opaque image locator when the user sent
// a photo. Cancel and Affirm are set by the caller when the text
// matched the cancel or confirm control for its language.
type Input struct {
	Text     string
	PhotoRef string
	Cancel   bool
	Affirm   bool
}

// Keyboard tells the transport which reply keyboard to attach.
type Keyboard int

const (
	KeyboardNone Keyboard = iota
	KeyboardCancel
	KeyboardSkipCancel
	KeyboardConfirm
	KeyboardRemove
)

// Reply is what the wizard wants said back to the user: a message
// catalog key, its format arguments, and a keyboard hint.
type Reply struct {
	Key      string
	Args     []any
	Keyboard Keyboard
}

// Message catalog keys produced by the wizard.
const (
	KeyAskPhoto     = "wizard_ask_photo"
	KeyNeedPhoto    = "wizard_need_photo"
	KeyAskName      = "wizard_ask_name"
	KeyNeedText     = "wizard_need_text"
	KeyNameInvalid  = "wizard_name_invalid"
	KeyAskDesc      = "wizard_ask_description"
	KeyAskPrice     = "wizard_ask_price"
	KeyAskPriceSkip = "wizard_ask_price_no_description"
	KeyDescTooLong  = "wizard_description_too_long"
	KeyPriceNaN     = "wizard_price_not_a_number"
	KeyPriceRange   = "wizard_price_out_of_range"
	KeyPreview      = "wizard_preview"
	KeySaved        = "wizard_saved"
	KeySaveError    = "wizard_save_error"
	KeyCancelled    = "wizard_cancelled"
	KeyNoSession    = "wizard_no_session"
	descPlaceholder = "-"
)

// Wizard drives the per-voter suggestion dialogue. All methods are
// scoped to a single voter id; sessions never observe each other.
type Wizard struct {
	sessions *SessionStore
	store    ScranInserter
}

func NewWizard(sessions *SessionStore, store ScranInserter) *Wizard {
	return &Wizard{sessions: sessions, store: store}
}

// Start begins a fresh session for the voter, replacing any session
// already in progress.
func (w *Wizard) Start(voterID string) Reply {
	w.sessions.Put(voterID, &Session{Step: StepPhoto})
	return Reply{Key: KeyAskPhoto, Keyboard: KeyboardCancel}
}

// Active reports whether the voter has a session in progress.
func (w *Wizard) Active(voterID string) bool {
	_, ok := w.sessions.Get(voterID)
	return ok
}

// Cancel destroys the voter's session if one exists. No scran is ever
// created by a cancelled session.
func (w *Wizard) Cancel(voterID string) (Reply, bool) {
	if !w.Active(voterID) {
		return Reply{}, false
	}
	w.sessions.Delete(voterID)
	return Reply{Key: KeyCancelled, Keyboard: KeyboardRemove}, true
}

// EvictIdle removes sessions idle longer than ttl.
func (w *Wizard) EvictIdle(ttl time.Duration) int {
	return w.sessions.EvictIdle(ttl)
}

// Handle advances the voter's session with one input. Validation
// failures re-prompt without advancing the step.
func (w *Wizard) Handle(voterID string, in Input) Reply {
	session, ok := w.sessions.Get(voterID)
	if !ok {
		return Reply{Key: KeyNoSession}
	}
	if in.Cancel {
		w.sessions.Delete(voterID)
		return Reply{Key: KeyCancelled, Keyboard: KeyboardRemove}
	}

	switch session.Step {
	case StepPhoto:
		return w.handlePhoto(voterID, session, in)
	case StepName:
		return w.handleName(voterID, session, in)
	case StepDescription:
		return w.handleDescription(voterID, session, in)
	case StepPrice:
		return w.handlePrice(voterID, session, in)
	case StepConfirm:
		return w.handleConfirmation(voterID, session, in)
	}
	// Unreachable with a well-formed session; treat like a missing one.
	w.sessions.Delete(voterID)
	return Reply{Key: KeyNoSession}
}

func (w *Wizard) handlePhoto(voterID string, session *Session, in Input) Reply {
	if in.PhotoRef == "" {
		return Reply{Key: KeyNeedPhoto, Keyboard: KeyboardCancel}
	}
	session.PhotoRef = in.PhotoRef
	session.Step = StepName
	w.sessions.Put(voterID, session)
	return Reply{Key: KeyAskName, Keyboard: KeyboardCancel}
}

func (w *Wizard) handleName(voterID string, session *Session, in Input) Reply {
	if in.Text == "" {
		return Reply{Key: KeyNeedText, Keyboard: KeyboardCancel}
	}
	name, err := ValidateName(in.Text)
	if err != nil {
		return Reply{Key: KeyNameInvalid, Keyboard: KeyboardCancel}
	}
	session.Name = name
	session.Step = StepDescription
	w.sessions.Put(voterID, session)
	return Reply{Key: KeyAskDesc, Args: []any{name}, Keyboard: KeyboardSkipCancel}
}

func (w *Wizard) handleDescription(voterID string, session *Session, in Input) Reply {
	if in.Text == "" {
		return Reply{Key: KeyNeedText, Keyboard: KeyboardSkipCancel}
	}
	description, err := ValidateDescription(in.Text)
	if err != nil {
		return Reply{Key: KeyDescTooLong, Keyboard: KeyboardSkipCancel}
	}
	session.Description = description
	session.Step = StepPrice
	w.sessions.Put(voterID, session)
	if description == nil {
		return Reply{Key: KeyAskPriceSkip, Keyboard: KeyboardCancel}
	}
	return Reply{Key: KeyAskPrice, Keyboard: KeyboardCancel}
}

func (w *Wizard) handlePrice(voterID string, session *Session, in Input) Reply {
	if in.Text == "" {
		return Reply{Key: KeyNeedText, Keyboard: KeyboardCancel}
	}
	price, err := ParsePrice(in.Text)
	if err != nil {
		if errors.Is(err, ErrPriceOutOfRange) {
			return Reply{Key: KeyPriceRange, Keyboard: KeyboardCancel}
		}
		return Reply{Key: KeyPriceNaN, Keyboard: KeyboardCancel}
	}
	session.Price = price
	session.Step = StepConfirm
	w.sessions.Put(voterID, session)
	return Reply{
		Key:      KeyPreview,
		Args:     []any{session.Name, describeDesc(session.Description), session.Price},
		Keyboard: KeyboardConfirm,
	}
}

func (w *Wizard) handleConfirmation(voterID string, session *Session, in Input) Reply {
	// Anything other than an explicit confirmation is a rejection.
	w.sessions.Delete(voterID)
	if !in.Affirm {
		return Reply{Key: KeyCancelled, Keyboard: KeyboardRemove}
	}
	id, err := w.store.InsertScran(session.PhotoRef, session.Name, session.Description, session.Price, voterID)
	if err != nil {
		log.Printf("Failed to save suggestion from user %s: %v", voterID, err)
		return Reply{Key: KeySaveError, Keyboard: KeyboardRemove}
	}
	log.Printf("New scran %d suggested by user %s: %s", id, voterID, session.Name)
	return Reply{Key: KeySaved, Keyboard: KeyboardRemove}
}

func describeDesc(description *string) string {
	if description == nil {
		return descPlaceholder
	}
	return *description
}
