package api

import (
	"errors"
	"strings"

	"github.com/LoushikLK/dynamic-pricing-food-service/internal/constants"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/http/handlers/shared"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/http/response"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

// respondWithMappedError 按规则顺序匹配错误；合并错误命中多条规则时消息依次拼接，状态码取首条。
// 未命中规则时沿用错误链中的 AppError，否则返回 500。
func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError) {
	code := 0
	msgs := make([]string, 0, 2)
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			if code == 0 {
				code = rule.code
			}
			msgs = append(msgs, rule.msg)
		}
	}
	if code != 0 {
		shared.RespondError(c, code, strings.Join(msgs, " "), err)
		return
	}
	if appErr, ok := response.AsAppError(err); ok {
		shared.RespondError(c, appErr.Code, appErr.Message, err)
		return
	}
	shared.RespondError(c, response.CodeInternal, constants.MsgInternalError, err)
}

var itemErrorRules = []mappedHandlerError{
	{target: service.ErrItemExists, code: response.CodeBadRequest, msg: constants.MsgItemExists},
	{target: service.ErrItemNotFound, code: response.CodeNotFound, msg: constants.MsgItemNotFound},
	{target: service.ErrItemInUse, code: response.CodeBadRequest, msg: constants.MsgItemInUse},
}

var organizationErrorRules = []mappedHandlerError{
	{target: service.ErrOrganizationExists, code: response.CodeBadRequest, msg: constants.MsgOrganizationExists},
	{target: service.ErrOrganizationNotFound, code: response.CodeNotFound, msg: constants.MsgOrganizationNotFound},
	{target: service.ErrOrganizationInUse, code: response.CodeBadRequest, msg: constants.MsgOrganizationInUse},
}

// 组织在前，物品在后，保证合并错误的消息顺序稳定
var pricingErrorRules = []mappedHandlerError{
	{target: service.ErrPricingNotFound, code: response.CodeNotFound, msg: constants.MsgPricingNotFound},
	{target: service.ErrOrganizationNotFound, code: response.CodeNotFound, msg: constants.MsgOrganizationNotFound},
	{target: service.ErrItemNotFound, code: response.CodeNotFound, msg: constants.MsgItemNotFound},
	{target: service.ErrPricingNotCalculable, code: response.CodeBadRequest, msg: constants.MsgPricingNotCalculable},
	{target: service.ErrInvalidDistance, code: response.CodeBadRequest, msg: constants.MsgTotalDistanceInvalid},
}
