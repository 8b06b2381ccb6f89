package errors

import stderrors "errors"

// token 包使用的内部哨兵错误，不走业务错误码。
var (
	ErrTokenGeneratorNotInitialized = stderrors.New("token generator not initialized")
	ErrUnexpectedSigningMethod      = stderrors.New("unexpected token signing method")
	ErrInvalidToken                 = stderrors.New("token is invalid")
	ErrInvalidTokenClaims           = stderrors.New("token claims are invalid")
	ErrInvalidTokenType             = stderrors.New("token type is invalid")
	ErrUserIDNotFound               = stderrors.New("user id not found in token claims")
)
