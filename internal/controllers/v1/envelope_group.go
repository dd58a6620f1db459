package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pouchbudget/backend/internal/httputil"
	"github.com/pouchbudget/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterEnvelopeGroupRoutes registers the routes for envelope groups with
// the RouterGroup that is passed.
func RegisterEnvelopeGroupRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsEnvelopeGroupList)
		r.GET("", GetEnvelopeGroups)
		r.POST("", CreateEnvelopeGroups)
	}

	// EnvelopeGroup with ID
	{
		r.OPTIONS("/:id", OptionsEnvelopeGroupDetail)
		r.GET("/:id", GetEnvelopeGroup)
		r.PATCH("/:id", UpdateEnvelopeGroup)
		r.DELETE("/:id", DeleteEnvelopeGroup)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			EnvelopeGroups
// @Success		204
// @Router			/v1/envelope-groups [options]
func OptionsEnvelopeGroupList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			EnvelopeGroups
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/envelope-groups/{id} [options]
func OptionsEnvelopeGroupDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.EnvelopeGroup{})
}

// @Summary		Create envelope groups
// @Description	Creates new envelope groups
// @Tags			EnvelopeGroups
// @Produce		json
// @Success		201		{object}	EnvelopeGroupCreateResponse
// @Failure		400		{object}	EnvelopeGroupCreateResponse
// @Failure		404		{object}	EnvelopeGroupCreateResponse
// @Failure		500		{object}	EnvelopeGroupCreateResponse
// @Param			groups	body		[]EnvelopeGroupEditable	true	"Envelope groups"
// @Router			/v1/envelope-groups [post]
func CreateEnvelopeGroups(c *gin.Context) {
	var editables []EnvelopeGroupEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeGroupCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := EnvelopeGroupCreateResponse{}

	for _, editable := range editables {
		group := editable.model()

		err := models.DB.Create(&group).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newEnvelopeGroup(c, group)
		r.Data = append(r.Data, EnvelopeGroupResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List envelope groups
// @Description	Returns a list of envelope groups, ordered by their sort order
// @Tags			EnvelopeGroups
// @Produce		json
// @Success		200	{object}	EnvelopeGroupListResponse
// @Failure		400	{object}	EnvelopeGroupListResponse
// @Failure		500	{object}	EnvelopeGroupListResponse
// @Router			/v1/envelope-groups [get]
// @Param			budget	query	string	false	"Filter by budget ID"
// @Param			name	query	string	false	"Filter by name"
// @Param			search	query	string	false	"Search for this text in the name"
// @Param			offset	query	uint	false	"The offset of the first group returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of groups to return. Defaults to 50."
func GetEnvelopeGroups(c *gin.Context) {
	var filter EnvelopeGroupQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("sort_order ASC, name ASC").
		Where(filter.model(), queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, "", filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 groups and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var groups []models.EnvelopeGroup
	err := q.Find(&groups).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EnvelopeGroupListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EnvelopeGroupListResponse{
			Error: &e,
		})
		return
	}

	data := make([]EnvelopeGroup, 0, len(groups))
	for _, group := range groups {
		data = append(data, newEnvelopeGroup(c, group))
	}

	c.JSON(http.StatusOK, EnvelopeGroupListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get envelope group
// @Description	Returns a specific envelope group
// @Tags			EnvelopeGroups
// @Produce		json
// @Success		200	{object}	EnvelopeGroupResponse
// @Failure		400	{object}	EnvelopeGroupResponse
// @Failure		404	{object}	EnvelopeGroupResponse
// @Failure		500	{object}	EnvelopeGroupResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/envelope-groups/{id} [get]
func GetEnvelopeGroup(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EnvelopeGroupResponse{
			Error: &s,
		})
		return
	}

	var group models.EnvelopeGroup
	err = models.DB.First(&group, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EnvelopeGroupResponse{
			Error: &s,
		})
		return
	}

	data := newEnvelopeGroup(c, group)
	c.JSON(http.StatusOK, EnvelopeGroupResponse{Data: &data})
}

// @Summary		Update envelope group
// @Description	Updates an existing envelope group. Only values to be updated need to be specified.
// @Tags			EnvelopeGroups
// @Accept			json
// @Produce		json
// @Success		200		{object}	EnvelopeGroupResponse
// @Failure		400		{object}	EnvelopeGroupResponse
// @Failure		404		{object}	EnvelopeGroupResponse
// @Failure		500		{object}	EnvelopeGroupResponse
// @Param			id		path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			group	body		EnvelopeGroupEditable	true	"Envelope group"
// @Router			/v1/envelope-groups/{id} [patch]
func UpdateEnvelopeGroup(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EnvelopeGroupResponse{
			Error: &s,
		})
		return
	}

	var group models.EnvelopeGroup
	err = models.DB.First(&group, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EnvelopeGroupResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, EnvelopeGroupEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EnvelopeGroupResponse{
			Error: &s,
		})
		return
	}

	var data EnvelopeGroupEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EnvelopeGroupResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&group).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EnvelopeGroupResponse{
			Error: &s,
		})
		return
	}

	r := newEnvelopeGroup(c, group)
	c.JSON(http.StatusOK, EnvelopeGroupResponse{Data: &r})
}

// @Summary		Delete envelope group
// @Description	Deletes an envelope group. Envelopes in the group become ungrouped.
// @Tags			EnvelopeGroups
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/envelope-groups/{id} [delete]
func DeleteEnvelopeGroup(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var group models.EnvelopeGroup
	err = models.DB.First(&group, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	// Envelopes must not reference a deleted group
	err = models.DB.Model(&models.Envelope{}).
		Where("group_id = ?", group.ID).
		Update("group_id", nil).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&group).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
