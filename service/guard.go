package service

import (
	"context"
	"errors"

	"budget/models"
	"budget/repository"
)

// requireUser 所有操作先确认调用方身份
func requireUser(userID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	return nil
}

// guardOwner 读取目标记录并校验归属。
// 记录不存在与不属于调用方返回同一个结果，不泄露他人记录是否存在
func guardOwner[T any, P models.RecordPtr[T]](ctx context.Context, table repository.Table[T], userID string, id uint) (*T, Result, error) {
	rec, err := table.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, Skip(ReasonNotFoundOrForbidden), nil
	}
	if err != nil {
		return nil, Result{}, err
	}
	if P(rec).OwnerID() != userID {
		return nil, Skip(ReasonNotFoundOrForbidden), nil
	}
	return rec, Applied(), nil
}

func listOwned[T any](ctx context.Context, table repository.Table[T], userID string) ([]T, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return table.ListByOwner(ctx, userID)
}

func deleteOwned[T any, P models.RecordPtr[T]](ctx context.Context, table repository.Table[T], userID string, id uint) (Result, error) {
	if err := requireUser(userID); err != nil {
		return Result{}, err
	}
	_, res, err := guardOwner[T, P](ctx, table, userID, id)
	if err != nil || res.Skipped {
		return res, err
	}
	if err := table.DeleteByID(ctx, id); err != nil {
		return Result{}, err
	}
	return Applied(), nil
}
