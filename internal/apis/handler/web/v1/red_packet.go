package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/zhangdayeb/go-redpacket/internal/entity"
	"github.com/zhangdayeb/go-redpacket/internal/pkg/core"
	"github.com/zhangdayeb/go-redpacket/internal/pkg/core/middleware"
	"github.com/zhangdayeb/go-redpacket/internal/service"
)

type RedPacket struct {
	RedPacketService service.IRedPacketService
}

func (h *RedPacket) RegisterRouter(r gin.IRouter) {
	group := r.Group("/api/v1/red-packet", middleware.Identity())
	{
		group.POST("/create", core.Wrap(h.Create))
		group.POST("/claim", core.Wrap(h.Claim))
		group.POST("/revoke", core.Wrap(h.Revoke))
		group.GET("/detail/:packet_id", core.Wrap(h.Detail))
		group.GET("/status/:packet_id", core.Wrap(h.Status))
	}
}

type RedPacketCreateRequest struct {
	ChatType      int     `json:"chat_type" binding:"required,oneof=1 2"`
	ChatId        int     `json:"chat_id" binding:"required"`
	Type          string  `json:"type" binding:"required,oneof=random average custom"`
	TotalAmount   int64   `json:"total_amount" binding:"required,gt=0"` // 总金额（分）
	TotalCount    int     `json:"total_count" binding:"required,gt=0"`
	Greeting      string  `json:"greeting"`
	ExpireSeconds int     `json:"expire_seconds"`
	CustomAmounts []int64 `json:"custom_amounts"`
}

type RedPacketCreateResponse struct {
	PacketId   string `json:"packet_id"`
	Status     string `json:"status"`
	StatusText string `json:"status_text"`
}

// Create 发红包
//
//	@Summary		发红包
//	@Description	创建红包并完成扣款与份额拆分
//	@Tags			红包
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RedPacketCreateRequest	true	"发红包请求"
//	@Success		200		{object}	RedPacketCreateResponse
//	@Router			/api/v1/red-packet/create [post]
func (h *RedPacket) Create(c *gin.Context) error {
	session, _ := middleware.FromContext(c)

	var req RedPacketCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		core.Fail(c, 400, "参数错误")
		return nil
	}

	info, err := h.RedPacketService.Create(c.Request.Context(), &service.CreateRedPacketRequest{
		SenderId:      session.UserId,
		SenderName:    session.UserName,
		ChatType:      req.ChatType,
		ChatId:        req.ChatId,
		Type:          req.Type,
		TotalAmount:   req.TotalAmount,
		TotalCount:    req.TotalCount,
		Greeting:      req.Greeting,
		ExpireSeconds: req.ExpireSeconds,
		CustomAmounts: req.CustomAmounts,
	})
	if err != nil {
		return err
	}

	core.Success(c, &RedPacketCreateResponse{
		PacketId:   info.PacketId,
		Status:     info.Status,
		StatusText: entity.RedPacketStatusText[info.Status],
	})

	return nil
}

type RedPacketClaimRequest struct {
	PacketId string `json:"packet_id" binding:"required"`
}

// Claim 领取红包
//
//	@Summary		领取红包
//	@Description	领取一份红包份额并入账
//	@Tags			红包
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RedPacketClaimRequest	true	"领取请求"
//	@Success		200		{object}	service.ClaimResult
//	@Router			/api/v1/red-packet/claim [post]
func (h *RedPacket) Claim(c *gin.Context) error {
	session, _ := middleware.FromContext(c)

	var req RedPacketClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		core.Fail(c, 400, "参数错误")
		return nil
	}

	result, err := h.RedPacketService.Claim(c.Request.Context(), req.PacketId, session.UserId, session.UserName)
	if err != nil {
		return err
	}

	core.Success(c, result)

	return nil
}

type RedPacketRevokeRequest struct {
	PacketId string `json:"packet_id" binding:"required"`
}

// Revoke 撤回红包
//
//	@Summary		撤回红包
//	@Description	发送者撤回红包，剩余金额退回
//	@Tags			红包
//	@Accept			json
//	@Produce		json
//	@Param			request	body	RedPacketRevokeRequest	true	"撤回请求"
//	@Success		200
//	@Router			/api/v1/red-packet/revoke [post]
func (h *RedPacket) Revoke(c *gin.Context) error {
	session, _ := middleware.FromContext(c)

	var req RedPacketRevokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		core.Fail(c, 400, "参数错误")
		return nil
	}

	if err := h.RedPacketService.Revoke(c.Request.Context(), req.PacketId, session.UserId); err != nil {
		return err
	}

	core.Success(c, nil)

	return nil
}

type RedPacketDetailResponse struct {
	*service.RedPacketInfo
	StatusText string `json:"status_text"`
}

// Detail 获取红包详情
//
//	@Summary		获取红包详情
//	@Description	红包详情，含领取历史与进度
//	@Tags			红包
//	@Produce		json
//	@Param			packet_id	path		string	true	"红包ID"
//	@Success		200			{object}	RedPacketDetailResponse
//	@Router			/api/v1/red-packet/detail/{packet_id} [get]
func (h *RedPacket) Detail(c *gin.Context) error {
	info, err := h.RedPacketService.GetDetail(c.Request.Context(), c.Param("packet_id"))
	if err != nil {
		return err
	}

	core.Success(c, &RedPacketDetailResponse{
		RedPacketInfo: info,
		StatusText:    entity.RedPacketStatusText[info.Status],
	})

	return nil
}

type RedPacketStatusResponse struct {
	*service.RedPacketStatusInfo
	StatusText string `json:"status_text"`
}

// Status 获取红包状态
//
//	@Summary		获取红包状态
//	@Description	红包状态简要信息，用于消息列表展示
//	@Tags			红包
//	@Produce		json
//	@Param			packet_id	path		string	true	"红包ID"
//	@Success		200			{object}	RedPacketStatusResponse
//	@Router			/api/v1/red-packet/status/{packet_id} [get]
func (h *RedPacket) Status(c *gin.Context) error {
	session, _ := middleware.FromContext(c)

	info, err := h.RedPacketService.GetStatus(c.Request.Context(), c.Param("packet_id"), session.UserId)
	if err != nil {
		return err
	}

	core.Success(c, &RedPacketStatusResponse{
		RedPacketStatusInfo: info,
		StatusText:          entity.RedPacketStatusText[info.Status],
	})

	return nil
}
