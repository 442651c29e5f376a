package handler

type ContextKey string

var (
	RoleCtxKey      ContextKey = "role"
	SubCtxKey       ContextKey = "sub"
	FranchiseCtxKey ContextKey = "franchise"
	MyInfoCtx       ContextKey = "myInfo"
	RiderInfoCtx    ContextKey = "riderInfo"
	WeekSessionCtx  ContextKey = "weekSession"
)
