package verification

import (
	"context"
	"crypto/rand"
	"log"
	"math/big"
)

// Sender delivers a verification code to an email address. Failures are
// surfaced to the caller but never roll back the stored code: a retry for the
// same address simply overwrites it.
type Sender interface {
	SendVerificationCode(to, code string) error
}

// SenderFunc adapts a plain function to the Sender interface
type SenderFunc func(to, code string) error

func (f SenderFunc) SendVerificationCode(to, code string) error {
	return f(to, code)
}

// Ledger issues and consumes registration verification codes
type Ledger struct {
	store  CodeStore
	sender Sender
}

// NewLedger creates a Ledger over the given store and sender
func NewLedger(store CodeStore, sender Sender) *Ledger {
	return &Ledger{store: store, sender: sender}
}

// Request generates a fresh 6-digit code for email, stores it (replacing any
// pending code) and dispatches it. A send failure is returned after the code
// is already stored.
func (l *Ledger) Request(ctx context.Context, email string) error {
	code, err := GenerateCode(6)
	if err != nil {
		return err
	}

	if err := l.store.Put(ctx, email, code); err != nil {
		return err
	}

	if err := l.sender.SendVerificationCode(email, code); err != nil {
		log.Printf("verification: send to %s failed: %v", email, err)
		return err
	}
	return nil
}

// VerifyAndConsume checks the submitted code for email. It fails closed when
// no code is pending, the code mismatches, or the entry has expired. On
// success the code is deleted so a second submission fails.
func (l *Ledger) VerifyAndConsume(ctx context.Context, email, submitted string) bool {
	code, ok, err := l.store.Get(ctx, email)
	if err != nil {
		log.Printf("verification: store read for %s failed: %v", email, err)
		return false
	}
	if !ok || code != submitted {
		return false
	}

	if err := l.store.Delete(ctx, email); err != nil {
		log.Printf("verification: consume for %s failed: %v", email, err)
		return false
	}
	return true
}

// GenerateCode generates a uniformly random n-digit numeric code. Leading
// zeros are preserved.
func GenerateCode(length int) (string, error) {
	const digits = "0123456789"
	code := make([]byte, length)

	for i := range code {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		code[i] = digits[num.Int64()]
	}

	return string(code), nil
}
