// Package identity normalises the authenticated-user records returned by the
// auth/user API.
//
// The server has shipped several response envelopes over time: a bare user,
// {user}, {data}, {data:{user}}, {result} and {result:{user}}. ExtractAuthUser
// tries them in that fixed order (see Strategies) and returns the first
// candidate carrying a resolvable id. ExtractAuthToken does the same for bearer
// tokens. Both functions are pure: they never fail and never touch state.
package identity
