package mockapi

import (
	"net/http"
	"slices"
	"strings"

	"github.com/bnema/camp-cli/internal/domain"
	"github.com/gin-gonic/gin"
)

type moveRequest struct {
	TargetInventoryID string `json:"targetInventoryId"`
	Quantity          int    `json:"quantity"`
}

// moveItem moves up to quantity of an item between two inventories in one step.
func (s *Server) moveItem(c *gin.Context) {
	var body moveRequest
	if err := c.ShouldBindJSON(&body); err != nil || body.Quantity <= 0 || body.TargetInventoryID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "targetInventoryId and a positive quantity are required"})
		return
	}

	fromID, equipmentID := c.Param("key"), c.Param("equipment")
	if fromID == body.TargetInventoryID {
		c.JSON(http.StatusBadRequest, gin.H{"message": "source and target inventories are the same"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	coll := s.collections["inventory"]
	var from, to domain.Inventory
	if !decodeItem(coll, fromID, &from) || !decodeItem(coll, body.TargetInventoryID, &to) {
		c.JSON(http.StatusNotFound, gin.H{"message": "inventory not found"})
		return
	}

	item, _, ok := from.FindItem(equipmentID)
	if !ok || item.Quantity == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "item not found"})
		return
	}
	moved := min(item.Quantity, body.Quantity)
	if err := from.AdjustItem(equipmentID, -moved); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return
	}
	to.Credit(item, moved)

	for _, inv := range []domain.Inventory{from, to} {
		obj, err := toObject(inv)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		coll.put(inv.ID, obj)
	}
	c.JSON(http.StatusOK, gin.H{"moved": moved})
}

func (s *Server) addCampaignCharacter(c *gin.Context) {
	s.changeRoster(c, func(ids []string, characterID string) []string {
		if slices.Contains(ids, characterID) {
			return ids
		}
		return append(ids, characterID)
	})
}

func (s *Server) removeCampaignCharacter(c *gin.Context) {
	s.changeRoster(c, func(ids []string, characterID string) []string {
		return slices.DeleteFunc(ids, func(id string) bool { return id == characterID })
	})
}

func (s *Server) changeRoster(c *gin.Context, apply func(ids []string, characterID string) []string) {
	campaignID, characterID := c.Param("key"), c.Param("character")

	s.mu.Lock()
	defer s.mu.Unlock()

	var campaign domain.Campaign
	if !decodeItem(s.collections["campaign"], campaignID, &campaign) {
		c.JSON(http.StatusNotFound, gin.H{"message": "campaign not found"})
		return
	}
	if _, ok := s.collections["character"].items[characterID]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "character not found"})
		return
	}
	if campaign.OwnerID != "" && campaign.OwnerID != c.GetString(userIDKey) && !hasRole(c, adminRole) {
		c.JSON(http.StatusForbidden, gin.H{"message": "only the campaign owner can change its roster"})
		return
	}

	campaign.CharacterIDs = apply(campaign.CharacterIDs, characterID)
	obj, err := toObject(campaign)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	s.collections["campaign"].put(campaignID, obj)
	c.Status(http.StatusNoContent)
}

func decodeItem(coll *collection, id string, out any) bool {
	item, ok := coll.items[id]
	if !ok {
		return false
	}
	return remarshal(item, out) == nil
}

func hasRole(c *gin.Context, role string) bool {
	roles, _ := c.Get(rolesKey)
	list, _ := roles.([]string)
	return slices.ContainsFunc(list, func(r string) bool { return strings.EqualFold(r, role) })
}
