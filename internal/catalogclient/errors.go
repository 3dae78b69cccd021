package catalogclient

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind категория ошибки обращения к сервису каталога
type Kind string

const (
	KindClient  Kind = "client"  // 4xx
	KindServer  Kind = "server"  // 5xx
	KindTimeout Kind = "timeout" // истёк таймаут запроса
	KindNetwork Kind = "network" // сервис недоступен
	KindUnknown Kind = "unknown" // всё остальное, включая битый ответ
)

// Error ошибка обращения к сервису каталога
type Error struct {
	Kind   Kind
	Op     string
	Status int
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("catalog %s: %s error", e.Op, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf определяет категорию любой ошибки
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return KindTimeout
	}
	return KindUnknown
}

// transportError классифицирует ошибку http.Client.Do
func transportError(op string, err error) *Error {
	var ne net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &ne) && ne.Timeout():
		return &Error{Kind: KindTimeout, Op: op, Err: err}
	case errors.Is(err, context.Canceled):
		return &Error{Kind: KindUnknown, Op: op, Err: err}
	default:
		return &Error{Kind: KindNetwork, Op: op, Err: err}
	}
}

// statusError классифицирует неуспешный код ответа
func statusError(op string, status int, detail string) *Error {
	kind := KindUnknown
	switch {
	case status >= 400 && status < 500:
		kind = KindClient
	case status >= 500:
		kind = KindServer
	}
	return &Error{Kind: kind, Op: op, Status: status, Detail: detail}
}
