// Package errors provides the structured error type shared by every layer of
// rpg-director.
//
// Errors carry a Code, a user-facing message, an optional cause and
// metadata:
//
//	err := errors.NotFound("save slot not found").WithMeta("slot_id", id)
//
// Wrapping keeps the code of the wrapped error:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return nil, errors.Wrap(err, "failed to load save slot")
//	}
//
// # Layer guidelines
//
// Repositories return NotFound and DataLoss. Orchestrators validate input
// with InvalidArgument and report a busy session with FailedPrecondition.
// The HTTP adapter maps codes with Code.HTTPStatus.
//
// Directive handling never returns these errors to callers: a rejected
// directive is logged and skipped so a turn always completes.
package errors
