package domain

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Effect tells the caller what side effect a transition requires. The engine
// itself performs no I/O.
type Effect int

const (
	// EffectNone means the caller only has to persist the returned session.
	EffectNone Effect = iota
	// EffectCommit means the collected fields must be committed as an order
	// and, on success, the session deleted.
	EffectCommit
	// EffectCancel means the session must be deleted.
	EffectCancel
)

// Outcome is the result of one transition: the next session, exactly one
// reply text, and the side effect the caller must execute.
type Outcome struct {
	Session Session
	Reply   string
	Effect  Effect
}

// titleCase formats a name for display in prompts and summaries. cases.Caser
// is stateful and not safe for concurrent use, so a fresh one is built per
// call; Transition runs on concurrent webhook requests.
func titleCase(s string) string {
	return cases.Title(language.Spanish).String(s)
}

// Transition advances the conversation by one inbound message. It is a pure
// function of (session, input); dedup filtering happens before this is called.
func Transition(sess Session, input string) Outcome {
	trimmed := strings.TrimSpace(input)
	normalized := strings.ToLower(trimmed)

	// Global keywords override whatever state we are in.
	if normalized == KeywordCancel {
		return Outcome{Session: sess, Reply: MsgCancelled, Effect: EffectCancel}
	}
	if normalized == KeywordRestart {
		fresh := NewSession()
		fresh.RecentMessageIDs = sess.RecentMessageIDs
		fresh.State = StateAwaitingName
		return Outcome{Session: fresh, Reply: MsgWelcome}
	}

	switch sess.State {
	case StateStart:
		sess.State = StateAwaitingName
		return Outcome{Session: sess, Reply: MsgWelcome}

	case StateAwaitingName:
		if trimmed == "" {
			return Outcome{Session: sess, Reply: MsgEmptyName}
		}
		sess.Fields.Name = titleCase(trimmed)
		sess.State = StateAwaitingCity
		return Outcome{Session: sess, Reply: MsgAskCity(sess.Fields.Name)}

	case StateAwaitingCity:
		city, ok := MatchCity(trimmed)
		if !ok {
			return Outcome{Session: sess, Reply: MsgInvalidCity}
		}
		sess.Fields.City = city
		sess.State = StateAwaitingAddress
		return Outcome{Session: sess, Reply: MsgAskAddress}

	case StateAwaitingAddress:
		if trimmed == "" {
			return Outcome{Session: sess, Reply: MsgEmptyAddress}
		}
		sess.Fields.Address = trimmed
		sess.State = StateAwaitingServiceType
		return Outcome{Session: sess, Reply: MsgServiceList()}

	case StateAwaitingServiceType:
		index, reply, ok := parseServiceIndex(normalized)
		if !ok {
			return Outcome{Session: sess, Reply: reply}
		}
		sess.Fields.ServiceType = index
		sess.State = StateAwaitingPaymentMethod
		return Outcome{Session: sess, Reply: MsgAskPayment}

	case StateAwaitingPaymentMethod:
		method, ok := MatchPaymentMethod(normalized)
		if !ok {
			return Outcome{Session: sess, Reply: MsgInvalidPayment}
		}
		sess.Fields.PaymentMethod = method
		sess.State = StateAwaitingConfirmation
		return Outcome{Session: sess, Reply: MsgSummary(sess.Fields)}

	case StateAwaitingConfirmation:
		switch normalized {
		case KeywordConfirm:
			return Outcome{Session: sess, Reply: MsgConfirmed, Effect: EffectCommit}
		case KeywordCorrect:
			sess.State = StateAwaitingCorrectionChoice
			return Outcome{Session: sess, Reply: MsgAskCorrection}
		default:
			return Outcome{Session: sess, Reply: MsgConfirmOptions}
		}

	case StateAwaitingCorrectionChoice:
		prompt, ok := correctionPrompt(normalized)
		if !ok {
			return Outcome{Session: sess, Reply: MsgInvalidCorrection}
		}
		sess.CorrectionTarget = normalized
		sess.State = StateAwaitingCorrectionValue
		return Outcome{Session: sess, Reply: prompt}

	case StateAwaitingCorrectionValue:
		return applyCorrection(sess, trimmed, normalized)
	}

	// Unrecognized persisted state: fail-safe reset. The dedup window is kept
	// so already-processed retries stay suppressed.
	fresh := NewSession()
	fresh.RecentMessageIDs = sess.RecentMessageIDs
	return Outcome{Session: fresh, Reply: MsgSessionReset}
}

func parseServiceIndex(normalized string) (int, string, bool) {
	index, err := strconv.Atoi(normalized)
	if err != nil {
		return 0, MsgServiceNotNumeric, false
	}
	if index < 1 || index > len(Catalog) {
		return 0, MsgInvalidServiceIndex(), false
	}
	return index, "", true
}

func correctionPrompt(field string) (string, bool) {
	switch field {
	case CorrectionName:
		return MsgCorrectName, true
	case CorrectionCity:
		return MsgCorrectCity, true
	case CorrectionAddress:
		return MsgCorrectAddress, true
	case CorrectionService:
		return MsgServiceList(), true
	case CorrectionPayment:
		return MsgAskPayment, true
	}
	return "", false
}

// applyCorrection validates the replacement value with the same rules as the
// original collection state. Invalid input re-prompts without leaving the
// correction state; the target field stays remembered.
func applyCorrection(sess Session, trimmed, normalized string) Outcome {
	switch sess.CorrectionTarget {
	case CorrectionName:
		if trimmed == "" {
			return Outcome{Session: sess, Reply: MsgEmptyName}
		}
		sess.Fields.Name = titleCase(trimmed)

	case CorrectionCity:
		city, ok := MatchCity(trimmed)
		if !ok {
			return Outcome{Session: sess, Reply: MsgInvalidCity}
		}
		sess.Fields.City = city

	case CorrectionAddress:
		if trimmed == "" {
			return Outcome{Session: sess, Reply: MsgEmptyAddress}
		}
		sess.Fields.Address = trimmed

	case CorrectionService:
		index, reply, ok := parseServiceIndex(normalized)
		if !ok {
			return Outcome{Session: sess, Reply: reply}
		}
		sess.Fields.ServiceType = index

	case CorrectionPayment:
		method, ok := MatchPaymentMethod(normalized)
		if !ok {
			return Outcome{Session: sess, Reply: MsgInvalidPayment}
		}
		sess.Fields.PaymentMethod = method

	default:
		// A correction state without a valid target is corrupt data.
		fresh := NewSession()
		fresh.RecentMessageIDs = sess.RecentMessageIDs
		return Outcome{Session: fresh, Reply: MsgSessionReset}
	}

	sess.CorrectionTarget = ""
	sess.State = StateAwaitingConfirmation
	return Outcome{Session: sess, Reply: MsgSummary(sess.Fields)}
}
