package catalog

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 目录领域错误定义
var (
	// ErrAuthorNotFound 作者不存在
	ErrAuthorNotFound = apperrors.New(apperrors.ErrCodeAuthorNotFound, "作者不存在")

	// ErrEditorNotFound 出版社不存在
	ErrEditorNotFound = apperrors.New(apperrors.ErrCodeEditorNotFound, "出版社不存在")

	// ErrGenreNotFound 类型不存在
	ErrGenreNotFound = apperrors.New(apperrors.ErrCodeGenreNotFound, "图书类型不存在")

	// ErrIdentifierNotFound 书号不存在
	ErrIdentifierNotFound = apperrors.New(apperrors.ErrCodeIdentifierNotFound, "书号不存在")

	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrEditorNameDuplicate 出版社名称已存在
	ErrEditorNameDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "出版社名称已存在")

	// ErrGenreNameDuplicate 类型名称已存在
	ErrGenreNameDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "图书类型名称已存在")

	// ErrIdentifierTaken 书号已被其他图书占用
	ErrIdentifierTaken = apperrors.New(apperrors.ErrCodeDuplicateEntry, "书号已被其他图书使用")

	// ErrAuthorBookDuplicate 作者与图书已关联
	ErrAuthorBookDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "作者已关联该图书")

	// ErrReferenceUnresolvable 出版社/类型既没有有效ID也没有名称
	ErrReferenceUnresolvable = apperrors.New(apperrors.ErrCodeReferenceUnresolvable, "关联对象缺少有效ID和名称")

	// ErrReferenceInUse 仍被图书引用，不能删除(出版社、类型、书号)
	ErrReferenceInUse = apperrors.ErrReferenceInUse
)
