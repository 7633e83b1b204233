package models_test

import (
	"github.com/centsible/backend/internal/classifier"
	"github.com/centsible/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestMatchRuleMatchEmpty() {
	err := models.DB.Create(&models.MatchRule{Match: "   ", Bucket: classifier.BucketRent}).Error
	assert.ErrorIs(suite.T(), err, models.ErrMatchRuleMatchEmpty)
}

func (suite *TestSuiteStandard) TestMatchRuleBucketInvalid() {
	err := models.DB.Create(&models.MatchRule{Match: "Rent*"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrMatchRuleBucketInvalid)

	err = models.DB.Create(&models.MatchRule{Match: "Rent*", Bucket: classifier.Bucket(42)}).Error
	assert.ErrorIs(suite.T(), err, models.ErrMatchRuleBucketInvalid)
}

func (suite *TestSuiteStandard) TestMatchRuleTrimsMatch() {
	matchRule := models.MatchRule{Match: " Rent Payment* ", Bucket: classifier.BucketRent}
	err := models.DB.Create(&matchRule).Error
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "Rent Payment*", matchRule.Match)
}

func (suite *TestSuiteStandard) TestUserRulesOrder() {
	for _, matchRule := range []models.MatchRule{
		{Priority: 2, Match: "Catch all*", Bucket: classifier.BucketOther},
		{Priority: 1, Match: "Rent*", Bucket: classifier.BucketRent},
		{Priority: 1, Match: "Uber*", Bucket: classifier.BucketTransportation},
	} {
		err := models.DB.Create(&matchRule).Error
		require.NoError(suite.T(), err)
	}

	rules, err := models.UserRules(models.DB)
	require.NoError(suite.T(), err)

	require.Len(suite.T(), rules, 3)
	assert.Equal(suite.T(), "Rent*", rules[0].Match)
	assert.Equal(suite.T(), "Uber*", rules[1].Match)
	assert.Equal(suite.T(), "Catch all*", rules[2].Match)
}
