// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fairsign

import (
	"sync"
	"testing"

	"github.com/33cn/blindcoin/common/crypto"
	_ "github.com/33cn/blindcoin/system/crypto/init"
	"github.com/33cn/blindcoin/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	keyOnce   sync.Once
	agencyKey crypto.BlindPrivKey
)

type fixedChooser int

func (c fixedChooser) Choose(n int) (int, error) {
	return int(c) % n, nil
}

func testConfig(candidates int) *types.Agency {
	return &types.Agency{
		Driver:     types.BlindDriverRSA,
		KeyBits:    1024,
		Candidates: candidates,
	}
}

func newTestAgency(t *testing.T, candidates int, chooser crypto.Chooser) *Agency {
	keyOnce.Do(func() {
		c, err := crypto.New(types.BlindDriverRSA)
		require.Nil(t, err)
		agencyKey, err = c.GenKey(1024)
		require.Nil(t, err)
	})
	agency, err := NewAgencyWithKey(agencyKey, testConfig(candidates), chooser)
	require.Nil(t, err)
	return agency
}

func testDocs(n int) [][]byte {
	docs := make([][]byte, n)
	for i := range docs {
		docs[i] = MakeDocument(CoverNames[i%len(CoverNames)])
	}
	return docs
}

func newPrepared(t *testing.T, agency *Agency) *Blinder {
	b := NewBlinder(agency.PubKey())
	require.Nil(t, b.Prepare(testDocs(agency.Candidates())))
	return b
}

func TestMakeDocument(t *testing.T) {
	assert.Equal(t, "The bearer of this signed document, Raven, has full diplomatic immunity.", string(MakeDocument("Raven")))
}

func TestFairSign(t *testing.T) {
	agency := newTestAgency(t, 10, fixedChooser(3))
	b := newPrepared(t, agency)

	s, err := agency.Open(b.Blinded())
	require.Nil(t, err)
	assert.Equal(t, 3, s.Sealed())
	assert.Equal(t, StateAwaitingDisclosures, s.State())
	assert.NotEmpty(t, s.ID())

	ds, err := b.Disclose(s.Sealed())
	require.Nil(t, err)
	require.Len(t, ds, 9)
	for _, d := range ds {
		assert.NotEqual(t, 3, d.Index)
	}

	blindSig, err := s.Submit(ds)
	require.Nil(t, err)
	assert.Equal(t, StateSigned, s.State())

	sig, err := b.Unblind(s.Sealed(), blindSig)
	require.Nil(t, err)
	doc, err := b.Document(3)
	require.Nil(t, err)
	assert.Equal(t, MakeDocument(CoverNames[3]), doc)
	assert.True(t, agency.PubKey().VerifyBytes(doc, sig))

	_, err = b.Unblind(s.Sealed(), blindSig)
	assert.Equal(t, types.ErrAlreadySigned, err)
	_, err = s.Submit(ds)
	assert.Equal(t, types.ErrSessionState, errors.Cause(err))
}

func TestFairSignRandomIndex(t *testing.T) {
	agency := newTestAgency(t, 4, nil)
	for i := 0; i < 5; i++ {
		b := newPrepared(t, agency)
		s, err := agency.Open(b.Blinded())
		require.Nil(t, err)
		sealed := s.Sealed()
		assert.True(t, sealed >= 0 && sealed < 4)

		ds, err := b.Disclose(sealed)
		require.Nil(t, err)
		blindSig, err := s.Submit(ds)
		require.Nil(t, err)
		sig, err := b.Unblind(sealed, blindSig)
		require.Nil(t, err)
		doc, err := b.Document(sealed)
		require.Nil(t, err)
		assert.True(t, agency.PubKey().VerifyBytes(doc, sig))
	}
}

// 修改一份公开的候选原文, 会话被拒绝, 不产生签名
func TestFairSignTamperPlaintext(t *testing.T) {
	agency := newTestAgency(t, 10, fixedChooser(0))
	b := newPrepared(t, agency)
	s, err := agency.Open(b.Blinded())
	require.Nil(t, err)

	ds, err := b.Disclose(s.Sealed())
	require.Nil(t, err)
	ds[4].Plaintext = MakeDocument("James Bond")
	tampered := ds[4].Index

	sig, err := s.Submit(ds)
	assert.Nil(t, sig)
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, types.ErrCandidateMismatch))
	var mismatch *types.CandidateMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, tampered, mismatch.Index)
	assert.Equal(t, StateRejected, s.State())

	_, err = s.Submit(ds)
	assert.Equal(t, types.ErrSessionState, errors.Cause(err))
}

func TestFairSignTamperFactor(t *testing.T) {
	agency := newTestAgency(t, 3, fixedChooser(2))
	b := newPrepared(t, agency)
	s, err := agency.Open(b.Blinded())
	require.Nil(t, err)
	ds, err := b.Disclose(s.Sealed())
	require.Nil(t, err)
	ds[1].Factor = ds[0].Factor

	_, err = s.Submit(ds)
	var mismatch *types.CandidateMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 1, mismatch.Index)
	assert.Equal(t, StateRejected, s.State())
}

func TestFairSignIncompleteDisclosure(t *testing.T) {
	agency := newTestAgency(t, 5, fixedChooser(1))

	cases := []struct {
		name   string
		mutate func(ds []Disclosure) []Disclosure
		index  int
	}{
		{"missing", func(ds []Disclosure) []Disclosure { return ds[1:] }, 0},
		{"duplicate", func(ds []Disclosure) []Disclosure { return append(ds, ds[2]) }, ds2Index},
		{"sealed", func(ds []Disclosure) []Disclosure {
			return append(ds, Disclosure{Index: 1})
		}, 1},
		{"outOfRange", func(ds []Disclosure) []Disclosure {
			return append([]Disclosure{{Index: 7}}, ds...)
		}, 7},
	}
	for _, c := range cases {
		b := newPrepared(t, agency)
		s, err := agency.Open(b.Blinded())
		require.Nil(t, err)
		ds, err := b.Disclose(s.Sealed())
		require.Nil(t, err)

		_, err = s.Submit(c.mutate(ds))
		var mismatch *types.CandidateMismatchError
		require.True(t, errors.As(err, &mismatch), c.name)
		assert.Equal(t, c.index, mismatch.Index, c.name)
		assert.Equal(t, StateRejected, s.State(), c.name)
	}
}

// sealed 为 1 时公开的位置依次为 0, 2, 3, 4
const ds2Index = 3

func TestCandidateReuse(t *testing.T) {
	agency := newTestAgency(t, 4, fixedChooser(2))
	b := newPrepared(t, agency)
	blinded := b.Blinded()

	s, err := agency.Open(blinded)
	require.Nil(t, err)
	ds, err := b.Disclose(s.Sealed())
	require.Nil(t, err)
	ds[0].Plaintext = []byte("forged")
	_, err = s.Submit(ds)
	assert.True(t, errors.Is(err, types.ErrCandidateMismatch))

	// 被拒绝后不能用公开过的盲化结果重新请求
	_, err = agency.Open(blinded)
	assert.Equal(t, types.ErrCandidateReused, errors.Cause(err))

	_, err = b.Disclose(1)
	assert.Equal(t, types.ErrAlreadyDisclosed, err)

	// 新的盲化因子可以重新开始
	fresh := newPrepared(t, agency)
	s, err = agency.Open(fresh.Blinded())
	require.Nil(t, err)
	ds, err = fresh.Disclose(s.Sealed())
	require.Nil(t, err)
	_, err = s.Submit(ds)
	require.Nil(t, err)

	dup := fresh.Blinded()
	dup[1] = dup[0]
	_, err = agency.Open(dup)
	assert.Equal(t, types.ErrCandidateReused, errors.Cause(err))
}

// 公开过的候选在之后任意多个会话后仍不能再次提交
func TestBurnedNeverExpire(t *testing.T) {
	agency := newTestAgency(t, 3, nil)
	first := newPrepared(t, agency)
	s, err := agency.Open(first.Blinded())
	require.Nil(t, err)
	ds, err := first.Disclose(s.Sealed())
	require.Nil(t, err)
	_, err = s.Submit(ds)
	require.Nil(t, err)

	for i := 0; i < 20; i++ {
		b := newPrepared(t, agency)
		s, err := agency.Open(b.Blinded())
		require.Nil(t, err)
		ds, err := b.Disclose(s.Sealed())
		require.Nil(t, err)
		_, err = s.Submit(ds)
		require.Nil(t, err)
	}
	assert.Equal(t, 21*2, agency.burned.Len())

	_, err = agency.Open(first.Blinded())
	assert.Equal(t, types.ErrCandidateReused, errors.Cause(err))
}

func TestOpenCandidateCount(t *testing.T) {
	agency := newTestAgency(t, 10, nil)
	b := NewBlinder(agency.PubKey())
	require.Nil(t, b.Prepare(testDocs(5)))
	_, err := agency.Open(b.Blinded())
	assert.Equal(t, types.ErrCandidateCount, errors.Cause(err))
	_, err = agency.Open(nil)
	assert.Equal(t, types.ErrCandidateCount, errors.Cause(err))
}

func TestBlinder(t *testing.T) {
	agency := newTestAgency(t, 3, nil)
	b := NewBlinder(agency.PubKey())

	_, err := b.Disclose(0)
	assert.Equal(t, types.ErrSessionState, errors.Cause(err))
	err = b.Prepare(testDocs(1))
	assert.Equal(t, types.ErrCandidateCount, errors.Cause(err))

	require.Nil(t, b.Prepare(testDocs(3)))
	assert.Equal(t, types.ErrBlinderUsed, b.Prepare(testDocs(3)))

	blinded := b.Blinded()
	require.Len(t, blinded, 3)
	assert.NotEqual(t, blinded[0], blinded[1])

	_, err = b.Unblind(0, blinded[0])
	assert.Equal(t, types.ErrSessionState, errors.Cause(err))
	_, err = b.Disclose(3)
	assert.Equal(t, types.ErrIndexOutOfRange, errors.Cause(err))
	_, err = b.Document(-1)
	assert.Equal(t, types.ErrIndexOutOfRange, errors.Cause(err))

	ds, err := b.Disclose(2)
	require.Nil(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, 0, ds[0].Index)
	assert.Equal(t, 1, ds[1].Index)

	// 公开过的盲化因子不能用来去盲
	_, err = b.Unblind(0, blinded[0])
	assert.Equal(t, types.ErrInvalidParam, errors.Cause(err))

	// 签名不对时验证失败
	wrong, err := agencyKey.BlindSign(blinded[0])
	require.Nil(t, err)
	_, err = b.Unblind(2, wrong)
	assert.Equal(t, types.ErrInvalidSignature, errors.Cause(err))
}

func TestConcurrentSessions(t *testing.T) {
	agency := newTestAgency(t, 3, nil)
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b := NewBlinder(agency.PubKey())
			if err := b.Prepare(testDocs(3)); err != nil {
				errs <- err
				return
			}
			s, err := agency.Open(b.Blinded())
			if err != nil {
				errs <- err
				return
			}
			ds, err := b.Disclose(s.Sealed())
			if err != nil {
				errs <- err
				return
			}
			blindSig, err := s.Submit(ds)
			if err != nil {
				errs <- err
				return
			}
			_, err = b.Unblind(s.Sealed(), blindSig)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.Nil(t, err)
	}
}

func TestNewAgency(t *testing.T) {
	_, err := NewAgency(testConfig(1), nil)
	assert.Equal(t, types.ErrConfig, errors.Cause(err))
	cfg := testConfig(3)
	cfg.Driver = "none"
	_, err = NewAgency(cfg, nil)
	assert.Equal(t, types.ErrUnknownDriver, errors.Cause(err))
	_, err = NewAgency(nil, nil)
	assert.Equal(t, types.ErrConfig, errors.Cause(err))

	cfg = testConfig(3)
	cfg.KeyBits = 512
	agency, err := NewAgency(cfg, fixedChooser(0))
	require.Nil(t, err)
	assert.Equal(t, 3, agency.Candidates())
	assert.Equal(t, "AwaitingDisclosures", StateAwaitingDisclosures.String())
	assert.Equal(t, "Unknown", State(99).String())
}
